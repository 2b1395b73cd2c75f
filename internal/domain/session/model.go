// Package session holds the per-browser session that carries the backend
// token and the signed-in user through a request.
package session

import (
	"context"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/user"
)

type Session struct {
	ID        string
	Token     string
	User      user.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Token returns the backend token of the session in ctx, or "".
func Token(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.Token
}
