package internal

import (
	"context"
	"time"

	"github.com/frahmantamala/employee-board/internal/core/user"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the session user attached by the session middleware.
func UserFromContext(ctx context.Context) *user.User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ContextUserKey).(*user.User); ok {
		return u
	}
	return nil
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
