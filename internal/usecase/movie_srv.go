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

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, actor *access.Actor, req *request.CreateMovieRequest) (*response.MovieResponse, error)
}

type movieService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	clk clock.Clock,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	req.Page, req.PerPage = paginate(req.Page, req.PerPage)

	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	items := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		items[i] = response.MovieToResponse(movie)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := parseID("movie_id", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie not found")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, actor *access.Actor, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Language:        req.Language,
		Genres:          trimAll(req.Genres),
		DurationMinutes: req.DurationMinutes,
		Rate:            req.Rate,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
	}
	if actor != nil {
		movie.CreatedBy = &actor.ID
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}
