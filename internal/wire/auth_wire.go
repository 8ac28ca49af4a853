package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/register/manager", authHandler.RegisterManager)
	r.Post("/api/login", authHandler.Login)

	// anonymous callers may create the first admin, the service checks the rest
	r.With(middleware.OptionalAuth(auth, log)).Post("/api/register/admin", authHandler.RegisterAdmin)

	r.With(middleware.AuthSession(auth, log)).Post("/api/logout", authHandler.Logout)
}
