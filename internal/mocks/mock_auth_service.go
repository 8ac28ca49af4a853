package mocks

import (
	"context"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, actor *access.Actor, req *request.RegisterRequest, role entity.UserRole) (*response.AuthResponse, error) {
	args := m.Called(ctx, actor, req, role)
	res, _ := args.Get(0).(*response.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error) {
	args := m.Called(ctx, req, userAgent, ip)
	res, _ := args.Get(0).(*response.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*access.Actor, error) {
	args := m.Called(ctx, token)
	actor, _ := args.Get(0).(*access.Actor)
	return actor, args.Error(1)
}
