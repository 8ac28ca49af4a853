package usecase

import (
	"strings"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Movie      MovieService
	Auditorium AuditoriumService
	Showtime   ShowtimeService
	Booking    BookingService
}

func NewService(
	repo *repository.Repository,
	seats cache.SeatAvailabilityCache,
	clk clock.Clock,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, clk, config, log),
		Movie:      NewMovieService(repo, clk, log),
		Auditorium: NewAuditoriumService(repo, clk, log),
		Showtime:   NewShowtimeService(repo, seats, clk, log),
		Booking:    NewBookingService(repo, seats, clk, log),
	}
}

// validate runs the struct tags of req and reports failures as one validation error.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	return nil
}

// parseID parses a required identifier named field.
func parseID(field, value string) (uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(value)
	if err != nil {
		return uuid.Nil, apperr.Validation("%s must be a valid UUID", field)
	}
	if id == uuid.Nil {
		return uuid.Nil, apperr.Validation("%s is required", field)
	}
	return id, nil
}

// paginate fills in the page defaults the listing endpoints fall back to.
func paginate(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
