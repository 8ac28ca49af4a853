package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// CreateShowtime handles POST /api/showtimes (admin only)
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created successfully", showtime)
}

// GetShowtime handles GET /api/showtimes/{id}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.GetShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// ListShowtimes handles GET /api/showtimes?movie_id=&auditorium_id=&status=
func (h *ShowtimeHandler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListShowtimesRequest{
		PaginatedRequest: *pageRequest(r),
		MovieID:          query.Get("movie_id"),
		AuditoriumID:     query.Get("auditorium_id"),
		Status:           query.Get("status"),
	}

	showtimes, err := h.service.ListShowtimes(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GenerateSeats handles POST /api/showtimes/{id}/seats (admin only)
func (h *ShowtimeHandler) GenerateSeats(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateSeatsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	seats, err := h.service.GenerateSeats(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "generate seats")
		return
	}

	utils.ResponseCreated(w, "Seats generated successfully", seats)
}

// ListSeats handles GET /api/showtimes/{id}/seats
func (h *ShowtimeHandler) ListSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.ListSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "list seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// ListAvailableSeats handles GET /api/showtimes/{id}/seats/available
func (h *ShowtimeHandler) ListAvailableSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.ListAvailableSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "list available seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// FindAvailableSeats handles GET /api/seats/available?movie_name=&auditorium_name=&show_time=
func (h *ShowtimeHandler) FindAvailableSeats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FindSeatsRequest{
		MovieName:      query.Get("movie_name"),
		AuditoriumName: query.Get("auditorium_name"),
		ShowTime:       query.Get("show_time"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	res, err := h.service.FindAvailableSeatsByName(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "find available seats")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// CancelShowtime handles PUT /api/showtimes/{id}/cancel (admin only)
func (h *ShowtimeHandler) CancelShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.CancelShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "cancel showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime cancelled", showtime)
}

// CompleteShowtime handles PUT /api/showtimes/{id}/complete (admin only)
func (h *ShowtimeHandler) CompleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.CompleteShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "complete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime completed", showtime)
}
