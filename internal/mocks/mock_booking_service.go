package mocks

import (
	"context"

	"movie-booking/internal/access"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ReserveSeat(ctx context.Context, actor *access.Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.ReservationResponse)
	return res, args.Error(1)
}

func (m *MockBookingService) CancelReservation(ctx context.Context, actor *access.Actor, req *request.CancelReservationRequest) error {
	args := m.Called(ctx, actor, req)
	return args.Error(0)
}

func (m *MockBookingService) ListReservations(ctx context.Context, actor *access.Actor, scope usecase.ReservationScope, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, actor, scope, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return res, args.Error(1)
}

func (m *MockBookingService) GetSeatDetails(ctx context.Context, actor *access.Actor, req *request.SeatDetailsRequest) (*response.SeatDetailsResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.SeatDetailsResponse)
	return res, args.Error(1)
}
