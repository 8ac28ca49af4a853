package utils

import (
	"context"

	"movie-booking/internal/access"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// GetActorFromContext returns the authenticated actor, nil for anonymous requests.
func GetActorFromContext(ctx context.Context) *access.Actor {
	actor, _ := ctx.Value(ActorKey).(*access.Actor)
	return actor
}

func SetActorContext(ctx context.Context, actor *access.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetTokenFromContext returns the session token of the current request
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}

// SetTokenContext stores the session token of the current request
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
