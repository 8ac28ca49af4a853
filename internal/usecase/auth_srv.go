package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Register creates an account with the given role. Creating an admin
	// needs an admin actor once the first admin exists.
	Register(ctx context.Context, actor *access.Actor, req *request.RegisterRequest, role entity.UserRole) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the actor it was issued to.
	Authenticate(ctx context.Context, token string) (*access.Actor, error)
}

type authService struct {
	repo   *repository.Repository
	clock  clock.Clock
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	clk clock.Clock,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		clock:  clk,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, actor *access.Actor, req *request.RegisterRequest, role entity.UserRole) (*response.AuthResponse, error) {
	if _, err := entity.ParseRole(string(role)); err != nil {
		return nil, apperr.Validation("invalid role %q", role)
	}

	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	bootstrap := role == entity.RoleAdmin && (actor == nil || !actor.IsAdmin())
	if bootstrap {
		if err := s.ensureNoAdmin(ctx); err != nil {
			return nil, err
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}

	// the unique email constraint settles concurrent registrations; the
	// admin lock settles concurrent bootstraps
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		if bootstrap {
			if err := s.repo.User.LockRole(ctx, entity.RoleAdmin); err != nil {
				return fmt.Errorf("lock admin bootstrap: %w", err)
			}
			if err := s.ensureNoAdmin(ctx); err != nil {
				return err
			}
		}
		return s.repo.User.Create(ctx, user)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	resp := response.AuthToResponse(user, nil)
	return &resp, nil
}

// ensureNoAdmin allows an anonymous admin registration only while no admin exists.
func (s *authService) ensureNoAdmin(ctx context.Context) error {
	exists, err := s.repo.User.ExistsWithRole(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin accounts: %w", err)
	}
	if exists {
		return apperr.Forbidden("only admins can register admin accounts")
	}
	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", email))
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperr.Forbidden("account is deactivated")
	}

	now := s.clock.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return apperr.Unauthorized("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID, s.clock.Now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*access.Actor, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	return &access.Actor{ID: user.ID, Role: user.Role}, nil
}
