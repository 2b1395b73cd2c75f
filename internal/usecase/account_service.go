package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// MaxAvatarBytes caps avatar uploads.
const MaxAvatarBytes = 2 << 20

var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AccountService signs users in and out and manages their profile.
type AccountService struct {
	users    user.Repository
	sessions *SessionService
	validate *validator.Validate
	logger   *logging.Logger
}

func NewAccountService(users user.Repository, sessions *SessionService, logger *logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AccountService{
		users:    users,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (s *AccountService) Login(ctx context.Context, current session.Session, credentials user.Credentials) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Login")
	defer span.End()

	credentials.Email = strings.TrimSpace(credentials.Email)
	if err := s.validate.Struct(credentials); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := s.users.Login(ctx, credentials)
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	return s.sessions.SignIn(ctx, current, result.Token, result.User)
}

func (s *AccountService) Register(ctx context.Context, current session.Session, registration user.Registration) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Register")
	defer span.End()

	registration.Username = strings.TrimSpace(registration.Username)
	registration.Email = strings.TrimSpace(registration.Email)
	registration.DisplayName = strings.TrimSpace(registration.DisplayName)
	if err := s.validate.Struct(registration); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result, err := s.users.Register(ctx, registration)
	if err != nil {
		return session.Session{}, fmt.Errorf("register: %w", err)
	}
	return s.sessions.SignIn(ctx, current, result.Token, result.User)
}

func (s *AccountService) Logout(ctx context.Context, current session.Session) error {
	return s.sessions.End(ctx, current.ID)
}

// Me refreshes the signed-in user from the backend and stores it on the
// session. A rejected token ends the session.
func (s *AccountService) Me(ctx context.Context) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Me")
	defer span.End()

	current, err := authorizedSession(ctx)
	if err != nil {
		return session.Session{}, err
	}

	u, err := s.users.Me(ctx)
	if err != nil {
		if isUnauthorized(err) {
			if endErr := s.sessions.End(ctx, current.ID); endErr != nil {
				s.logger.WarnContext(ctx, "end rejected session failed", "error", endErr)
			}
		}
		return session.Session{}, fmt.Errorf("get current user: %w", err)
	}

	current.User = u
	return s.sessions.Save(ctx, current)
}

func (s *AccountService) Profile(ctx context.Context) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Profile")
	defer span.End()

	current, err := authorizedSession(ctx)
	if err != nil {
		return user.Profile{}, err
	}

	profile, err := s.users.Profile(ctx)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	if profile.User != current.User {
		current.User = profile.User
		if _, err := s.sessions.Save(ctx, current); err != nil {
			s.logger.WarnContext(ctx, "refresh session user failed", "error", err)
		}
	}
	return profile, nil
}

// UploadAvatar checks the image by content, not by the name or header the
// browser sent, and stores the updated user on the session.
func (s *AccountService) UploadAvatar(ctx context.Context, filename string, data []byte) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UploadAvatar")
	defer span.End()

	current, err := authorizedSession(ctx)
	if err != nil {
		return session.Session{}, err
	}
	if len(data) == 0 {
		return session.Session{}, fmt.Errorf("%w: avatar file is empty", ErrInvalidInput)
	}
	if len(data) > MaxAvatarBytes {
		return session.Session{}, fmt.Errorf("%w: avatar must be at most 2 MiB", ErrInvalidInput)
	}

	detected := mimetype.Detect(data)
	contentType := strings.ToLower(detected.String())
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := avatarTypes[contentType]
	if !ok {
		return session.Session{}, fmt.Errorf("%w: avatar must be a PNG, JPEG, GIF or WebP image", ErrInvalidInput)
	}

	name := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, `\`, "/")), path.Ext(filename))
	if name == "" || name == "." || name == "/" {
		name = "avatar"
	}

	updated, err := s.users.UploadAvatar(ctx, user.Avatar{
		Filename:    name + ext,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return session.Session{}, fmt.Errorf("upload avatar: %w", err)
	}

	current.User = updated
	return s.sessions.Save(ctx, current)
}
