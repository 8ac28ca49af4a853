package middleware

import (
	"context"
	"net/http"
	"strings"

	"movie-booking/internal/access"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the actor it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Actor, error)
}

// AuthSession rejects requests without a valid session token.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(auth, logger, true)
}

// OptionalAuth resolves the actor when a token is sent and lets anonymous
// requests through. A token that is sent but invalid is still rejected.
func OptionalAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(auth, logger, false)
}

func session(auth Authenticator, logger *zap.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					utils.ResponseUnauthorized(w, "Missing authorization token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			actor, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindInternal {
					logger.Error("Failed to validate session", zap.Error(err))
				} else {
					logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				}
				utils.ResponseError(w, err)
				return
			}

			ctx := utils.SetActorContext(r.Context(), actor)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Gate applies an access gate to every route below it. GET, HEAD and
// OPTIONS count as safe methods.
func Gate(g access.Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := utils.GetActorFromContext(r.Context())
			if err := g.Check(actor, isSafeMethod(r.Method)); err != nil {
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				}
				if actor != nil {
					fields = append(fields,
						zap.String("user_id", actor.ID.String()),
						zap.String("role", string(actor.Role)),
					)
				}
				logger.Warn("Access denied", fields...)
				utils.ResponseError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
