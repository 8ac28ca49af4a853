package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ReserveSeat handles POST /api/reservations/book (protected)
func (h *BookingHandler) ReserveSeat(w http.ResponseWriter, r *http.Request) {
	var req request.ReserveSeatRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	reservation, err := h.service.ReserveSeat(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "reserve seat")
		return
	}

	utils.ResponseCreated(w, "Seat reserved successfully", reservation)
}

// CancelReservation handles POST /api/reservations/cancel (protected)
func (h *BookingHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CancelReservationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.service.CancelReservation(r.Context(), utils.GetActorFromContext(r.Context()), &req); err != nil {
		handleServiceError(h.log, w, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled", nil)
}

// GetUserReservations handles GET /api/reservations/user (protected)
func (h *BookingHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	h.listReservations(w, r, usecase.ScopeSelf)
}

// GetAllReservations handles GET /api/reservations/admin (admin only)
func (h *BookingHandler) GetAllReservations(w http.ResponseWriter, r *http.Request) {
	h.listReservations(w, r, usecase.ScopeAll)
}

func (h *BookingHandler) listReservations(w http.ResponseWriter, r *http.Request, scope usecase.ReservationScope) {
	bookings, err := h.service.ListReservations(r.Context(), utils.GetActorFromContext(r.Context()), scope, pageRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetSeatDetails handles POST /api/reservations/details (protected)
func (h *BookingHandler) GetSeatDetails(w http.ResponseWriter, r *http.Request) {
	var req request.SeatDetailsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	details, err := h.service.GetSeatDetails(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get seat details")
		return
	}

	utils.ResponseSuccess(w, "success", details)
}
