package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
)

// DraftRepository keeps one draft per session. Drafts are never persisted.
type DraftRepository struct {
	mu    sync.RWMutex
	items map[string]fantasy.Draft
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{items: make(map[string]fantasy.Draft)}
}

func (r *DraftRepository) Get(_ context.Context, sessionID string) (fantasy.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, ok := r.items[sessionID]
	if !ok {
		return fantasy.Draft{}, false, nil
	}

	return cloneDraft(draft), true, nil
}

func (r *DraftRepository) Upsert(_ context.Context, draft fantasy.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[draft.SessionID] = cloneDraft(draft)
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, sessionID)
	return nil
}

func cloneDraft(d fantasy.Draft) fantasy.Draft {
	copied := d
	copied.Picks = append([]fantasy.SquadPick(nil), d.Picks...)
	return copied
}
