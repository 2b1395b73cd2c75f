package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "token").
		From("portal_sessions").
		Where(Eq("id", "s1"), Expr("expires_at > ?", "now")).
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, token FROM portal_sessions WHERE id = $1 AND expires_at > $2 LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "s1" || args[1] != "now" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Token   string `db:"token"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := InsertModel("portal_sessions", row{ID: "s1", Token: "tok", skipped: "x", Ignored: "y"}, "ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO portal_sessions (id, token) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "s1" || args[1] != "tok" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("portal_sessions", "nope", ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *struct {
		ID string `db:"id"`
	}
	if _, _, err := InsertModel("portal_sessions", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestDeleteBuilder(t *testing.T) {
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	query, args, err := DeleteFrom("portal_sessions").
		Where(Expr("expires_at <= ?", now)).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM portal_sessions WHERE expires_at <= $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != now {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("portal_sessions").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}
