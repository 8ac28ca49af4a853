package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditoriumService interface {
	GetAuditoriums(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error)
	GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error)
	CreateAuditorium(ctx context.Context, actor *access.Actor, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error)
}

type auditoriumService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewAuditoriumService(
	repo *repository.Repository,
	clk clock.Clock,
	log *zap.Logger,
) AuditoriumService {
	return &auditoriumService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "auditorium")),
	}
}

func (s *auditoriumService) GetAuditoriums(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error) {
	req.Page, req.PerPage = paginate(req.Page, req.PerPage)

	auditoriums, err := s.repo.Auditorium.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get auditoriums", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("get auditoriums: %w", err)
	}

	total, err := s.repo.Auditorium.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count auditoriums", zap.Error(err))
		return nil, fmt.Errorf("count auditoriums: %w", err)
	}

	items := make([]response.AuditoriumResponse, len(auditoriums))
	for i, a := range auditoriums {
		items[i] = response.AuditoriumToResponse(a)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *auditoriumService) GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error) {
	id, err := parseID("auditorium_id", auditoriumID)
	if err != nil {
		return nil, err
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get auditorium by id: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("auditorium not found")
	}

	resp := response.AuditoriumToResponse(auditorium)
	return &resp, nil
}

func (s *auditoriumService) CreateAuditorium(ctx context.Context, actor *access.Actor, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create auditorium validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	auditorium := &entity.Auditorium{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       strings.TrimSpace(req.Name),
		TotalSeats: req.TotalSeats,
		TotalShows: req.TotalShows,
		Place:      strings.TrimSpace(req.Place),
	}
	if actor != nil {
		auditorium.AdminID = &actor.ID
	}

	if req.MovieID != nil && *req.MovieID != "" {
		movieID, err := parseID("movie_id", *req.MovieID)
		if err != nil {
			return nil, err
		}
		movie, err := s.repo.Movie.FindByID(ctx, movieID)
		if err != nil {
			return nil, fmt.Errorf("get movie: %w", err)
		}
		if movie == nil {
			return nil, apperr.NotFound("movie not found")
		}
		auditorium.MovieID = &movie.ID
	}

	if err := s.repo.Auditorium.Create(ctx, auditorium); err != nil {
		return nil, fmt.Errorf("create auditorium: %w", err)
	}

	s.log.Info("Auditorium created",
		zap.String("auditorium_id", auditorium.ID.String()),
		zap.String("name", auditorium.Name),
	)

	resp := response.AuditoriumToResponse(auditorium)
	return &resp, nil
}
