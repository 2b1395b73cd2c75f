package fantasy

import "context"

// Repository keeps drafts for the lifetime of a session.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Draft, bool, error)
	Upsert(ctx context.Context, draft Draft) error
	Delete(ctx context.Context, sessionID string) error
}
