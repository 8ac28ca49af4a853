package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const timeOfDayLayout = "15:04:05"

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context, req *request.ListShowtimesRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)

	GenerateSeats(ctx context.Context, showtimeID string, req *request.GenerateSeatsRequest) ([]response.SeatResponse, error)
	ListSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error)
	ListAvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error)

	// FindShowtime matches movie title and auditorium name exactly and the
	// UTC time of day of the start, ignoring its date.
	FindShowtime(ctx context.Context, req *request.FindSeatsRequest) (*response.ShowtimeResponse, error)
	FindAvailableSeatsByName(ctx context.Context, req *request.FindSeatsRequest) (*response.AvailableSeatsResponse, error)

	CancelShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	CompleteShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
}

type showtimeService struct {
	repo  *repository.Repository
	seats cache.SeatAvailabilityCache
	clock clock.Clock
	log   *zap.Logger
}

func NewShowtimeService(
	repo *repository.Repository,
	seats cache.SeatAvailabilityCache,
	clk clock.Clock,
	log *zap.Logger,
) ShowtimeService {
	return &showtimeService{
		repo:  repo,
		seats: seats,
		clock: clk,
		log:   log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create showtime validation failed", zap.Error(err))
		return nil, err
	}

	movieID, err := parseID("movie_id", req.MovieID)
	if err != nil {
		return nil, err
	}
	auditoriumID, err := parseID("auditorium_id", req.AuditoriumID)
	if err != nil {
		return nil, err
	}

	status := entity.ShowtimeScheduled
	if req.Status != "" {
		if status, err = entity.ParseShowtimeStatus(req.Status); err != nil {
			return nil, apperr.Validation("invalid status %q", req.Status)
		}
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie not found")
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, auditoriumID)
	if err != nil {
		s.log.Error("Failed to get auditorium", zap.Error(err), zap.String("auditorium_id", auditoriumID.String()))
		return nil, fmt.Errorf("get auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("auditorium not found")
	}

	now := s.clock.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:      movie.ID,
		AuditoriumID: auditorium.ID,
		Status:       status,
		StartTime:    req.StartTime.UTC(),
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.String("auditorium_id", auditorium.ID.String()),
		zap.Time("start_time", showtime.StartTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	resp.MovieTitle = movie.Title
	resp.AuditoriumName = auditorium.Name
	return &resp, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := parseID("showtime_id", showtimeID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.Showtime.FindDetailByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if detail == nil {
		return nil, apperr.NotFound("showtime not found")
	}

	resp := response.ShowtimeDetailToResponse(detail)
	return &resp, nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context, req *request.ListShowtimesRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	req.Page, req.PerPage = paginate(req.Page, req.PerPage)

	var filter repository.ShowtimeFilter
	filter.MovieID, _ = uuid.Parse(req.MovieID)
	filter.AuditoriumID, _ = uuid.Parse(req.AuditoriumID)
	filter.Status = entity.ShowtimeStatus(req.Status)

	showtimes, err := s.repo.Showtime.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list showtimes", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count showtimes", zap.Error(err))
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	items := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, st := range showtimes {
		items = append(items, response.ShowtimeDetailToResponse(st))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *showtimeService) GenerateSeats(ctx context.Context, showtimeID string, req *request.GenerateSeatsRequest) ([]response.SeatResponse, error) {
	id, err := parseID("showtime_id", showtimeID)
	if err != nil {
		return nil, err
	}
	if len(req.SeatNumbers) == 0 {
		return nil, apperr.Validation("seat_numbers must contain at least one seat")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	numbers := trimAll(req.SeatNumbers)
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if n == "" {
			return nil, apperr.Validation("seat numbers must not be blank")
		}
		if _, dup := seen[n]; dup {
			return nil, apperr.DuplicateSeat(n)
		}
		seen[n] = struct{}{}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("showtime not found")
	}

	// Stagger creation instants so insertion order survives ties on created_at.
	now := s.clock.Now()
	seats := make([]*entity.Seat, len(numbers))
	for i, n := range numbers {
		seats[i] = &entity.Seat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			},
			ShowtimeID: showtime.ID,
			SeatNumber: n,
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			return nil, fmt.Errorf("generate seats: %w", err)
		}
		return nil, err
	}

	s.seats.Invalidate(ctx, showtime.ID)

	s.log.Info("Seats generated",
		zap.String("showtime_id", showtime.ID.String()),
		zap.Int("count", len(seats)),
	)

	return response.SeatsToResponse(seats), nil
}

func (s *showtimeService) ListSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	showtime, err := s.showtimeByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.ListByShowtime(ctx, showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	return response.SeatsToResponse(seats), nil
}

func (s *showtimeService) ListAvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	showtime, err := s.showtimeByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	seats, err := s.availableSeats(ctx, showtime.ID)
	if err != nil {
		return nil, err
	}
	return response.SeatsToResponse(seats), nil
}

func (s *showtimeService) FindShowtime(ctx context.Context, req *request.FindSeatsRequest) (*response.ShowtimeResponse, error) {
	showtime, err := s.findShowtime(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := response.ShowtimeToResponse(showtime)
	resp.MovieTitle = req.MovieName
	resp.AuditoriumName = req.AuditoriumName
	return &resp, nil
}

func (s *showtimeService) FindAvailableSeatsByName(ctx context.Context, req *request.FindSeatsRequest) (*response.AvailableSeatsResponse, error) {
	showtime, err := s.findShowtime(ctx, req)
	if err != nil {
		return nil, err
	}

	seats, err := s.availableSeats(ctx, showtime.ID)
	if err != nil {
		return nil, err
	}

	st := response.ShowtimeToResponse(showtime)
	st.MovieTitle = req.MovieName
	st.AuditoriumName = req.AuditoriumName
	return &response.AvailableSeatsResponse{
		Showtime: st,
		Seats:    response.SeatsToResponse(seats),
	}, nil
}

func (s *showtimeService) CancelShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	return s.transition(ctx, showtimeID, entity.ShowtimeCancelled)
}

func (s *showtimeService) CompleteShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	return s.transition(ctx, showtimeID, entity.ShowtimeCompleted)
}

// transition leaves existing bookings untouched.
func (s *showtimeService) transition(ctx context.Context, showtimeID string, next entity.ShowtimeStatus) (*response.ShowtimeResponse, error) {
	showtime, err := s.showtimeByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.Status.CanTransitionTo(next) {
		return nil, apperr.Validation("invalid status transition from %s to %s", showtime.Status, next)
	}

	now := s.clock.Now()
	updated, err := s.repo.Showtime.UpdateStatus(ctx, showtime.ID, showtime.Status, next, now)
	if err != nil {
		return nil, fmt.Errorf("update showtime status: %w", err)
	}
	if !updated {
		// lost a race with another transition
		return nil, apperr.Validation("invalid status transition from %s to %s", showtime.Status, next)
	}

	s.log.Info("Showtime status changed",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("from", string(showtime.Status)),
		zap.String("to", string(next)),
	)

	showtime.Status = next
	showtime.UpdatedAt = now
	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) showtimeByID(ctx context.Context, showtimeID string) (*entity.Showtime, error) {
	id, err := parseID("showtime_id", showtimeID)
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("showtime not found")
	}
	return showtime, nil
}

// availableSeats reads through the seat availability cache. The generation
// seen on the miss is captured before the database read, so a booking that
// commits meanwhile keeps this read from being cached.
func (s *showtimeService) availableSeats(ctx context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	seats, generation, ok := s.seats.Get(ctx, showtimeID)
	if ok {
		return seats, nil
	}

	seats, err := s.repo.Seat.ListAvailable(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("list available seats: %w", err)
	}

	s.seats.Set(ctx, showtimeID, generation, seats)
	return seats, nil
}

func (s *showtimeService) findShowtime(ctx context.Context, req *request.FindSeatsRequest) (*entity.Showtime, error) {
	req.MovieName = strings.TrimSpace(req.MovieName)
	req.AuditoriumName = strings.TrimSpace(req.AuditoriumName)
	req.ShowTime = strings.TrimSpace(req.ShowTime)

	if req.MovieName == "" || req.AuditoriumName == "" || req.ShowTime == "" {
		return nil, apperr.Validation("movie_name, auditorium_name and show_time are required")
	}
	if _, err := time.Parse(timeOfDayLayout, req.ShowTime); err != nil {
		return nil, apperr.Validation("invalid time format, use HH:MM:SS")
	}

	movie, err := s.repo.Movie.FindByTitle(ctx, req.MovieName)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie not found")
	}

	auditorium, err := s.repo.Auditorium.FindByName(ctx, req.AuditoriumName)
	if err != nil {
		return nil, fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("auditorium not found")
	}

	showtime, err := s.repo.Showtime.FindByTimeOfDay(ctx, movie.ID, auditorium.ID, req.ShowTime)
	if err != nil {
		s.log.Error("Failed to find showtime",
			zap.Error(err),
			zap.String("movie_name", req.MovieName),
			zap.String("auditorium_name", req.AuditoriumName),
			zap.String("show_time", req.ShowTime),
		)
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("no showtime found for the given criteria")
	}
	return showtime, nil
}
