package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/user"
)

const sessionTable = "portal_sessions"

var sessionColumns = []string{"id", "token", "user_payload", "created_at", "expires_at"}

type sessionTableModel struct {
	ID          string    `db:"id"`
	Token       string    `db:"token"`
	UserPayload []byte    `db:"user_payload"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
}

// sessionInsertModel carries the payload as text; lib/pq would send a []byte
// as bytea, which jsonb does not accept.
type sessionInsertModel struct {
	ID          string    `db:"id"`
	Token       string    `db:"token"`
	UserPayload string    `db:"user_payload"`
	CreatedAt   time.Time `db:"created_at"`
	ExpiresAt   time.Time `db:"expires_at"`
}

type userPayload struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toInsertModel(s session.Session) (sessionInsertModel, error) {
	payload, err := sonic.Marshal(userPayload{
		ID:          s.User.ID,
		Username:    s.User.Username,
		Email:       s.User.Email,
		DisplayName: s.User.DisplayName,
		AvatarURL:   s.User.AvatarURL,
		CreatedAt:   s.User.CreatedAt,
	})
	if err != nil {
		return sessionInsertModel{}, fmt.Errorf("encode session user: %w", err)
	}

	return sessionInsertModel{
		ID:          s.ID,
		Token:       s.Token,
		UserPayload: string(payload),
		CreatedAt:   s.CreatedAt.UTC(),
		ExpiresAt:   s.ExpiresAt.UTC(),
	}, nil
}

func (m sessionTableModel) toDomain() (session.Session, error) {
	var payload userPayload
	if len(m.UserPayload) > 0 {
		if err := sonic.Unmarshal(m.UserPayload, &payload); err != nil {
			return session.Session{}, fmt.Errorf("decode session user: %w", err)
		}
	}

	return session.Session{
		ID:    m.ID,
		Token: m.Token,
		User: user.User{
			ID:          payload.ID,
			Username:    payload.Username,
			Email:       payload.Email,
			DisplayName: payload.DisplayName,
			AvatarURL:   payload.AvatarURL,
			CreatedAt:   payload.CreatedAt,
		},
		CreatedAt: m.CreatedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
	}, nil
}
