package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/user"
)

func TestRepository_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing session, ok=%v err=%v", ok, err)
	}

	stored := session.Session{ID: "s1", Token: "tok", User: user.User{ID: "u1", Username: "rio"}}
	if err := repo.Save(ctx, stored); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, ok, err := repo.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get session: ok=%v err=%v", ok, err)
	}
	if got != stored {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "s1"); ok {
		t.Fatalf("session must be gone after delete")
	}
}

func TestRepository_PurgeExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository()
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	_ = repo.Save(ctx, session.Session{ID: "old", ExpiresAt: now.Add(-time.Second)})
	_ = repo.Save(ctx, session.Session{ID: "edge", ExpiresAt: now})
	_ = repo.Save(ctx, session.Session{ID: "live", ExpiresAt: now.Add(time.Hour)})

	removed, err := repo.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 2 {
		t.Fatalf("unexpected removed count: got=%d want=2", removed)
	}
	if _, ok, _ := repo.Get(ctx, "live"); !ok {
		t.Fatalf("live session must survive the purge")
	}
}
