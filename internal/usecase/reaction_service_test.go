package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	newsmock "github.com/riskibarqy/football-portal/internal/mocks/domain/news"
)

const testSessionID = "1b4e28ba-2fa1-4d3b-a3f5-ef19b5a7633b"

func signedIn(ctx context.Context) context.Context {
	return session.WithSession(ctx, session.Session{ID: testSessionID, Token: "tok-1"})
}

func anonymous(ctx context.Context) context.Context {
	return session.WithSession(ctx, session.Session{ID: testSessionID})
}

func TestReactionService_ToggleArticleLike_Commits(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := newsmock.NewRepository(t)
	registry := toggle.NewRegistry()
	service := NewReactionService(repo, registry, logging.NewNop())

	repo.
		On("ToggleArticleLike", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "a-1").
		Return(news.Reaction{Liked: true, Count: 11}, nil).
		Once()

	got, err := service.ToggleArticleLike(ctx, "a-1", toggle.State{Active: false, Count: 10})
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if got.State != (toggle.State{Active: true, Count: 11}) || got.Phase != toggle.PhaseCommitted || got.Superseded {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestReactionService_ToggleCommentLike_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := newsmock.NewRepository(t)
	registry := toggle.NewRegistry()
	service := NewReactionService(repo, registry, logging.NewNop())

	repo.
		On("ToggleCommentLike", mock.Anything, "c-9").
		Return(news.Reaction{}, ErrDependencyUnavailable).
		Once()

	current := toggle.State{Active: true, Count: 2}
	got, err := service.ToggleCommentLike(ctx, "c-9", current)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got.State != current || got.Phase != toggle.PhaseRolledBack {
		t.Fatalf("expected rollback to %+v, got %+v", current, got)
	}

	key := toggle.Key{SessionID: testSessionID, Kind: toggle.KindCommentLike, EntityID: "c-9"}
	if overlay := registry.Overlay(key, toggle.State{Active: true, Count: 5}); overlay.Count != 5 {
		t.Fatalf("rolled back toggle must not overlay fetched state, got %+v", overlay)
	}
}

func TestReactionService_RefusesAnonymousBeforeRequest(t *testing.T) {
	t.Parallel()

	repo := newsmock.NewRepository(t)
	service := NewReactionService(repo, toggle.NewRegistry(), logging.NewNop())

	_, err := service.ToggleArticleLike(anonymous(context.Background()), "a-1", toggle.State{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	repo.AssertNotCalled(t, "ToggleArticleLike", mock.Anything, mock.Anything)
}

func TestReactionService_LatestToggleWins(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := newsmock.NewRepository(t)
	registry := toggle.NewRegistry()
	service := NewReactionService(repo, registry, logging.NewNop())

	started := make(chan struct{})
	release := make(chan struct{})
	repo.
		On("ToggleArticleLike", mock.Anything, "a-1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(news.Reaction{Liked: true, Count: 4}, nil).
		Once()
	repo.
		On("ToggleArticleLike", mock.Anything, "a-1").
		Return(news.Reaction{Liked: false, Count: 3}, nil).
		Once()

	type outcome struct {
		result ToggleResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := service.ToggleArticleLike(ctx, "a-1", toggle.State{Active: false, Count: 3})
		first <- outcome{result: res, err: err}
	}()
	<-started

	second, err := service.ToggleArticleLike(ctx, "a-1", toggle.State{Active: true, Count: 4})
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.State != (toggle.State{Active: false, Count: 3}) || second.Superseded {
		t.Fatalf("unexpected second result: %+v", second)
	}

	close(release)
	late := <-first
	if late.err != nil {
		t.Fatalf("first toggle: %v", late.err)
	}
	if !late.result.Superseded {
		t.Fatalf("late response must be reported as superseded: %+v", late.result)
	}
	if late.result.State != (toggle.State{Active: false, Count: 3}) {
		t.Fatalf("late response must not override the latest state, got %+v", late.result.State)
	}
}
