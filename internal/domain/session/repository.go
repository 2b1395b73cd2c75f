package session

import (
	"context"
	"time"
)

// Repository persists sessions between requests.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Session, bool, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
