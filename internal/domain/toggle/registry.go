// Package toggle tracks like and favorite toggles as two-phase operations.
// A toggle is pending until the backend confirms it, then it is committed or
// rolled back. When toggles on one key overlap, only the latest one settles it.
package toggle

import (
	"fmt"
	"sync"
)

type Kind string

const (
	KindArticleLike    Kind = "article-like"
	KindCommentLike    Kind = "comment-like"
	KindFavoriteTeam   Kind = "favorite-team"
	KindFavoritePlayer Kind = "favorite-player"
)

func (k Kind) Valid() bool {
	switch k {
	case KindArticleLike, KindCommentLike, KindFavoriteTeam, KindFavoritePlayer:
		return true
	default:
		return false
	}
}

// State is what the page shows for one toggle.
type State struct {
	Active bool
	Count  int
}

// Flip returns the state after one toggle.
func (s State) Flip() State {
	if s.Active {
		return State{Active: false, Count: max(s.Count-1, 0)}
	}
	return State{Active: true, Count: s.Count + 1}
}

type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseCommitted  Phase = "committed"
	PhaseRolledBack Phase = "rolled_back"
)

type Key struct {
	SessionID string
	Kind      Kind
	EntityID  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.SessionID, k.Kind, k.EntityID)
}

// Ticket identifies one Begin call.
type Ticket struct {
	Key      Key
	Seq      uint64
	Previous State
	Pending  State
}

// Entry is the tracked state for one key.
type Entry struct {
	State  State
	Phase  Phase
	Latest uint64
}

type sessionEntries map[Key]*entryRecord

type entryRecord struct {
	entry Entry
	// settled is the newest state confirmed by the backend, or the state
	// before the first Begin. Rollback restores it.
	settled    State
	settledSeq uint64
}

type Registry struct {
	mu       sync.Mutex
	seq      uint64
	sessions map[string]sessionEntries
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]sessionEntries)}
}

// Begin records a pending flip of current and returns its ticket. If the key
// already has a pending toggle, the flip starts from that pending state.
func (r *Registry) Begin(key Key, current State) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	entries := r.sessions[key.SessionID]
	if entries == nil {
		entries = make(sessionEntries)
		r.sessions[key.SessionID] = entries
	}

	rec, ok := entries[key]
	if !ok {
		rec = &entryRecord{settled: current, entry: Entry{State: current, Phase: PhaseCommitted}}
		entries[key] = rec
	} else if rec.entry.Phase != PhasePending {
		rec.settled = current
		rec.entry.State = current
	}

	previous := rec.entry.State
	pending := previous.Flip()
	rec.entry = Entry{State: pending, Phase: PhasePending, Latest: r.seq}

	return Ticket{Key: key, Seq: r.seq, Previous: previous, Pending: pending}
}

// Commit applies the confirmed state. When a newer ticket exists for the key
// the displayed state is left alone and Commit reports false; the confirmation
// is still remembered as the state a later rollback returns to.
func (r *Registry) Commit(ticket Ticket, confirmed State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.sessions[ticket.Key.SessionID][ticket.Key]
	if !ok {
		return false
	}
	if ticket.Seq > rec.settledSeq {
		rec.settled = confirmed
		rec.settledSeq = ticket.Seq
	}
	if rec.entry.Latest != ticket.Seq {
		return false
	}
	rec.entry.State = confirmed
	rec.entry.Phase = PhaseCommitted
	return true
}

// Rollback restores the last settled state. It reports false when a newer
// ticket exists for the key.
func (r *Registry) Rollback(ticket Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.latest(ticket)
	if !ok {
		return false
	}
	rec.entry.State = rec.settled
	rec.entry.Phase = PhaseRolledBack
	return true
}

func (r *Registry) latest(ticket Ticket) (*entryRecord, bool) {
	entries := r.sessions[ticket.Key.SessionID]
	if entries == nil {
		return nil, false
	}
	rec, ok := entries[ticket.Key]
	if !ok || rec.entry.Latest != ticket.Seq {
		return nil, false
	}
	return rec, true
}

func (r *Registry) Get(key Key) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.sessions[key.SessionID][key]
	if !ok {
		return Entry{}, false
	}
	return rec.entry, true
}

// Overlay returns the pending state for key. Settled keys and untracked keys
// show fallback, which is the freshly fetched backend state.
func (r *Registry) Overlay(key Key, fallback State) State {
	entry, ok := r.Get(key)
	if !ok || entry.Phase != PhasePending {
		return fallback
	}
	return entry.State
}

// Forget drops everything tracked for a session.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
