package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// ToggleResult is the state the page should show after a toggle request.
// Superseded is set when a newer toggle on the same item was issued while
// this one was in flight; State then reflects that newer toggle.
type ToggleResult struct {
	State      toggle.State
	Phase      toggle.Phase
	Superseded bool
}

type toggleRunner struct {
	registry *toggle.Registry
	logger   *logging.Logger
}

// authorizedSession returns the session in ctx, refusing anonymous callers
// before anything reaches the backend.
func authorizedSession(ctx context.Context) (session.Session, error) {
	s, ok := session.FromContext(ctx)
	if !ok || !s.Authenticated() {
		return session.Session{}, fmt.Errorf("%w: sign in required", ErrUnauthorized)
	}
	return s, nil
}

// run flips current optimistically, calls the backend and settles the toggle
// with the confirmed state or rolls it back.
func (r toggleRunner) run(
	ctx context.Context,
	kind toggle.Kind,
	entityID string,
	current toggle.State,
	call func(ctx context.Context, pending toggle.State) (toggle.State, error),
) (ToggleResult, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return ToggleResult{}, fmt.Errorf("%w: %s id is required", ErrInvalidInput, kind)
	}
	if current.Count < 0 {
		current.Count = 0
	}

	s, err := authorizedSession(ctx)
	if err != nil {
		return ToggleResult{}, err
	}

	key := toggle.Key{SessionID: s.ID, Kind: kind, EntityID: entityID}
	ticket := r.registry.Begin(key, current)

	confirmed, callErr := call(ctx, ticket.Pending)
	if callErr != nil {
		if r.registry.Rollback(ticket) {
			r.logger.WarnContext(ctx, "toggle rolled back", "kind", string(kind), "entity_id", entityID, "error", callErr)
		}
		return r.result(key, ticket, toggle.PhaseRolledBack), callErr
	}

	r.registry.Commit(ticket, confirmed)
	return r.result(key, ticket, toggle.PhaseCommitted), nil
}

func (r toggleRunner) result(key toggle.Key, ticket toggle.Ticket, phase toggle.Phase) ToggleResult {
	entry, ok := r.registry.Get(key)
	if !ok {
		return ToggleResult{State: ticket.Previous, Phase: phase}
	}
	return ToggleResult{
		State:      entry.State,
		Phase:      entry.Phase,
		Superseded: entry.Latest != ticket.Seq,
	}
}

// overlay swaps in the pending state of a toggle issued by the session in ctx.
func (r toggleRunner) overlay(ctx context.Context, kind toggle.Kind, entityID string, fetched toggle.State) toggle.State {
	s, ok := session.FromContext(ctx)
	if !ok || s.ID == "" {
		return fetched
	}
	return r.registry.Overlay(toggle.Key{SessionID: s.ID, Kind: kind, EntityID: entityID}, fetched)
}
