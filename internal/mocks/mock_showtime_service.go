package mocks

import (
	"context"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type MockShowtimeService struct {
	mock.Mock
}

func (m *MockShowtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.ShowtimeResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) GetShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	args := m.Called(ctx, showtimeID)
	res, _ := args.Get(0).(*response.ShowtimeResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) ListShowtimes(ctx context.Context, req *request.ListShowtimesRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.ShowtimeResponse])
	return res, args.Error(1)
}

func (m *MockShowtimeService) GenerateSeats(ctx context.Context, showtimeID string, req *request.GenerateSeatsRequest) ([]response.SeatResponse, error) {
	args := m.Called(ctx, showtimeID, req)
	res, _ := args.Get(0).([]response.SeatResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) ListSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	args := m.Called(ctx, showtimeID)
	res, _ := args.Get(0).([]response.SeatResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) ListAvailableSeats(ctx context.Context, showtimeID string) ([]response.SeatResponse, error) {
	args := m.Called(ctx, showtimeID)
	res, _ := args.Get(0).([]response.SeatResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) FindShowtime(ctx context.Context, req *request.FindSeatsRequest) (*response.ShowtimeResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.ShowtimeResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) FindAvailableSeatsByName(ctx context.Context, req *request.FindSeatsRequest) (*response.AvailableSeatsResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*response.AvailableSeatsResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) CancelShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	args := m.Called(ctx, showtimeID)
	res, _ := args.Get(0).(*response.ShowtimeResponse)
	return res, args.Error(1)
}

func (m *MockShowtimeService) CompleteShowtime(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	args := m.Called(ctx, showtimeID)
	res, _ := args.Get(0).(*response.ShowtimeResponse)
	return res, args.Error(1)
}
