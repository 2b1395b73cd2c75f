package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/user"
)

func TestGetSessionQuery(t *testing.T) {
	query, args, err := getSessionQuery("s1")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT id, token, user_payload, created_at, expires_at FROM portal_sessions WHERE id = $1 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestPurgeExpiredQuery(t *testing.T) {
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	query, args, err := purgeExpiredQuery(now)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if query != "DELETE FROM portal_sessions WHERE expires_at <= $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if got, ok := args[0].(time.Time); !ok || got.Location() != time.UTC || !got.Equal(now) {
		t.Fatalf("expected the cutoff in UTC, got %#v", args[0])
	}
}

func TestSessionModelRoundTrip(t *testing.T) {
	created := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	in := session.Session{
		ID:        "s1",
		Token:     "tok",
		User:      user.User{ID: "u1", Username: "rio", DisplayName: "Rio", AvatarURL: "https://cdn.example.com/a.png", CreatedAt: created},
		CreatedAt: created,
		ExpiresAt: created.Add(7 * 24 * time.Hour),
	}

	model, err := toInsertModel(in)
	if err != nil {
		t.Fatalf("to insert model: %v", err)
	}

	out, err := sessionTableModel{
		ID:          model.ID,
		Token:       model.Token,
		UserPayload: []byte(model.UserPayload),
		CreatedAt:   model.CreatedAt,
		ExpiresAt:   model.ExpiresAt,
	}.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if out.User.Username != "rio" || out.User.AvatarURL != in.User.AvatarURL || !out.User.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user after round trip: %+v", out.User)
	}
	if !out.ExpiresAt.Equal(in.ExpiresAt) || out.Token != "tok" {
		t.Fatalf("unexpected session after round trip: %+v", out)
	}
}

func TestSessionModel_RejectsCorruptPayload(t *testing.T) {
	_, err := sessionTableModel{ID: "s1", UserPayload: []byte("{not json")}.toDomain()
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get session: %w", sql.ErrNoRows)) {
		t.Fatalf("wrapped ErrNoRows must count as not found")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatalf("unrelated error must not count as not found")
	}
}
