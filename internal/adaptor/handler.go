package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Movie      *MovieHandler
	Auditorium *AuditoriumHandler
	Showtime   *ShowtimeHandler
	Booking    *BookingHandler
	Health     *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Movie:      NewMovieHandler(service.Movie, log),
		Auditorium: NewAuditoriumHandler(service.Auditorium, log),
		Showtime:   NewShowtimeHandler(service.Showtime, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Health:     NewHealthHandler(db, log),
	}
}

// decodeRequest reads the JSON body into dst and runs its validation tags.
// It writes the 400 response itself and reports whether the caller may go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// handleServiceError maps err to its status code. Client errors are logged
// at warn level, anything else at error level with the generic message.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("code", string(kind)))
	}
	utils.ResponseError(w, err)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Error("Database ping failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unreachable", nil, nil)
		return
	}
	utils.ResponseSuccess(w, "OK", nil)
}
