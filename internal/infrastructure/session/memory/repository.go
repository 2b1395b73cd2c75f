package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/session"
)

// Repository keeps sessions in process memory. Sessions are lost on restart.
type Repository struct {
	mu    sync.RWMutex
	items map[string]session.Session
}

func NewRepository() *Repository {
	return &Repository{items: make(map[string]session.Session)}
}

func (r *Repository) Get(_ context.Context, sessionID string) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[sessionID]
	if !ok {
		return session.Session{}, false, nil
	}
	return s, true, nil
}

func (r *Repository) Save(_ context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.ID] = s
	return nil
}

func (r *Repository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, sessionID)
	return nil
}

func (r *Repository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, s := range r.items {
		if s.Expired(now) {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}
