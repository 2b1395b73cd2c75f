package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
)

const upsertSessionSuffix = `ON CONFLICT (id) DO UPDATE SET
    token = EXCLUDED.token,
    user_payload = EXCLUDED.user_payload,
    expires_at = EXCLUDED.expires_at,
    updated_at = NOW()`

// Repository stores sessions in postgres so they survive restarts and can be
// shared between instances.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, sessionID string) (session.Session, bool, error) {
	query, args, err := getSessionQuery(sessionID)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	s, err := row.toDomain()
	if err != nil {
		return session.Session{}, false, err
	}
	return s, true, nil
}

func (r *Repository) Save(ctx context.Context, s session.Session) error {
	model, err := toInsertModel(s)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(sessionTable, model, upsertSessionSuffix)
	if err != nil {
		return fmt.Errorf("build save session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	query, args, err := qb.DeleteFrom(sessionTable).Where(qb.Eq("id", sessionID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := purgeExpiredQuery(now)
	if err != nil {
		return 0, fmt.Errorf("build purge sessions query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged sessions: %w", err)
	}
	return removed, nil
}

func getSessionQuery(sessionID string) (string, []any, error) {
	return qb.Select(sessionColumns...).
		From(sessionTable).
		Where(qb.Eq("id", sessionID)).
		Limit(1).
		ToSQL()
}

func purgeExpiredQuery(now time.Time) (string, []any, error) {
	return qb.DeleteFrom(sessionTable).
		Where(qb.Expr("expires_at <= ?", now.UTC())).
		ToSQL()
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
