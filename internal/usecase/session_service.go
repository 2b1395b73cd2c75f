package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	idgen "github.com/riskibarqy/football-portal/internal/platform/id"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// SessionService owns the session lifecycle: purge at start, load per
// request, save on credential changes, end on logout.
type SessionService struct {
	repo     session.Repository
	drafts   fantasy.Repository
	registry *toggle.Registry
	idGen    idgen.Generator
	ttl      time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

func NewSessionService(
	repo session.Repository,
	drafts fantasy.Repository,
	registry *toggle.Registry,
	idGen idgen.Generator,
	ttl time.Duration,
	logger *logging.Logger,
) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &SessionService{
		repo:     repo,
		drafts:   drafts,
		registry: registry,
		idGen:    idGen,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// PurgeExpired drops sessions past their expiry. It runs at startup.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.PurgeExpired")
	defer span.End()

	removed, err := s.repo.PurgeExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "purged expired sessions", "count", removed)
	}
	return removed, nil
}

// Load returns the stored session for id. Unknown, malformed and expired ids
// report false; an expired session is ended on the way.
func (s *SessionService) Load(ctx context.Context, sessionID string) (session.Session, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if !idgen.Valid(sessionID) {
		return session.Session{}, false, nil
	}

	stored, exists, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return session.Session{}, false, nil
	}
	if stored.Expired(s.now().UTC()) {
		if endErr := s.End(ctx, sessionID); endErr != nil {
			s.logger.WarnContext(ctx, "end expired session failed", "error", endErr)
		}
		return session.Session{}, false, nil
	}
	return stored, true, nil
}

// Open starts an anonymous session.
func (s *SessionService) Open(ctx context.Context) (session.Session, error) {
	sessionID, err := s.idGen.NewID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now().UTC()
	opened := session.Session{ID: sessionID, CreatedAt: now}
	return s.Save(ctx, opened)
}

// Save stores the session and extends its expiry.
func (s *SessionService) Save(ctx context.Context, sess session.Session) (session.Session, error) {
	if sess.ID == "" {
		return session.Session{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Save(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// SignIn attaches credentials to the session, opening one when needed.
// Toggle state from before sign-in belongs to the anonymous viewer and is
// dropped.
func (s *SessionService) SignIn(ctx context.Context, current session.Session, token string, u user.User) (session.Session, error) {
	if current.ID == "" {
		opened, err := s.Open(ctx)
		if err != nil {
			return session.Session{}, err
		}
		current = opened
	}
	if s.registry != nil {
		s.registry.Forget(current.ID)
	}

	current.Token = token
	current.User = u
	return s.Save(ctx, current)
}

// End deletes the session and everything kept for it in memory.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}

	if s.registry != nil {
		s.registry.Forget(sessionID)
	}
	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "delete session draft failed", "error", err)
		}
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
