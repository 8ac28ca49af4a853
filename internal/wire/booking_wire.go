package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/entity"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(auth, log))

		r.Post("/book", bookingHandler.ReserveSeat)
		r.Post("/cancel", bookingHandler.CancelReservation)
		r.Get("/user", bookingHandler.GetUserReservations)
		r.Post("/details", bookingHandler.GetSeatDetails)

		r.With(middleware.Gate(access.ExactRole{Role: entity.RoleAdmin}, log)).
			Get("/admin", bookingHandler.GetAllReservations)
	})
}
