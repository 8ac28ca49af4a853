package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	auth middleware.Authenticator,
	gate access.Gate,
	log *zap.Logger,
) {
	r.Route("/api/showtimes", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(auth, log))
		r.Use(middleware.Gate(gate, log))

		r.Get("/", showtimeHandler.ListShowtimes)
		r.Post("/", showtimeHandler.CreateShowtime)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", showtimeHandler.GetShowtime)
			r.Get("/seats", showtimeHandler.ListSeats)
			r.Post("/seats", showtimeHandler.GenerateSeats)
			r.Get("/seats/available", showtimeHandler.ListAvailableSeats)
			r.Put("/cancel", showtimeHandler.CancelShowtime)
			r.Put("/complete", showtimeHandler.CompleteShowtime)
		})
	})

	r.With(
		middleware.OptionalAuth(auth, log),
		middleware.Gate(gate, log),
	).Get("/api/seats/available", showtimeHandler.FindAvailableSeats)
}
