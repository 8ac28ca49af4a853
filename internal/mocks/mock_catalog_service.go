package mocks

import (
	"context"

	"movie-booking/internal/access"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.MovieResponse])
	return res, args.Error(1)
}

func (m *MockMovieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	args := m.Called(ctx, movieID)
	res, _ := args.Get(0).(*response.MovieResponse)
	return res, args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, actor *access.Actor, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.MovieResponse)
	return res, args.Error(1)
}

type MockAuditoriumService struct {
	mock.Mock
}

func (m *MockAuditoriumService) GetAuditoriums(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.AuditoriumResponse])
	return res, args.Error(1)
}

func (m *MockAuditoriumService) GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error) {
	args := m.Called(ctx, auditoriumID)
	res, _ := args.Get(0).(*response.AuditoriumResponse)
	return res, args.Error(1)
}

func (m *MockAuditoriumService) CreateAuditorium(ctx context.Context, actor *access.Actor, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.AuditoriumResponse)
	return res, args.Error(1)
}
