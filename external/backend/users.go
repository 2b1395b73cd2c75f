package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

var _ user.Repository = (*UserRepository)(nil)

type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Login(ctx context.Context, credentials user.Credentials) (user.AuthResult, error) {
	row, err := sendJSON[authDTO](ctx, r.client, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    credentials.Email,
		Password: credentials.Password,
	}, false)
	if err != nil {
		return user.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	return r.toAuthResult(row)
}

func (r *UserRepository) Register(ctx context.Context, registration user.Registration) (user.AuthResult, error) {
	row, err := sendJSON[authDTO](ctx, r.client, http.MethodPost, "/api/auth/register", registerRequest{
		Username:    registration.Username,
		Email:       registration.Email,
		Password:    registration.Password,
		DisplayName: registration.DisplayName,
	}, false)
	if err != nil {
		return user.AuthResult{}, fmt.Errorf("register: %w", err)
	}
	return r.toAuthResult(row)
}

func (r *UserRepository) Me(ctx context.Context) (user.User, error) {
	row, err := getJSON[userDTO](ctx, r.client, "/api/auth/me", nil, true)
	if err != nil {
		return user.User{}, fmt.Errorf("get current user: %w", err)
	}
	if err := r.client.validOne("user", row); err != nil {
		return user.User{}, err
	}
	return r.toUser(row), nil
}

func (r *UserRepository) Profile(ctx context.Context) (user.Profile, error) {
	row, err := getJSON[profileDTO](ctx, r.client, "/api/users/profile", nil, true)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if err := r.client.validOne("profile", row); err != nil {
		return user.Profile{}, err
	}

	return user.Profile{
		User:            r.toUser(row.userDTO),
		Bio:             strings.TrimSpace(row.Bio),
		CommentCount:    row.CommentsCount,
		LikeCount:       row.LikesCount,
		FavoriteTeams:   row.FavoriteTeams,
		FavoritePlayers: row.FavoritePlayers,
	}, nil
}

// UploadAvatar sends the image as multipart form field "avatar".
func (r *UserRepository) UploadAvatar(ctx context.Context, avatar user.Avatar) (user.User, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename=%q`, avatar.Filename))
	header.Set("Content-Type", avatar.ContentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return user.User{}, crerr.Wrap(err, "create avatar form part")
	}
	if _, err := part.Write(avatar.Data); err != nil {
		return user.User{}, crerr.Wrap(err, "write avatar form part")
	}
	if err := form.Close(); err != nil {
		return user.User{}, crerr.Wrap(err, "close avatar form")
	}

	raw, err := r.client.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/users/avatar",
		body:        buf.Bytes(),
		contentType: form.FormDataContentType(),
		auth:        true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("upload avatar: %w", err)
	}

	row, err := decodeData[userDTO](raw)
	if err != nil {
		return user.User{}, fmt.Errorf("upload avatar: %w", err)
	}
	if err := r.client.validOne("user", row); err != nil {
		return user.User{}, err
	}
	return r.toUser(row), nil
}

func (r *UserRepository) toAuthResult(row authDTO) (user.AuthResult, error) {
	token := row.token()
	if token == "" {
		return user.AuthResult{}, fmt.Errorf("%w: auth response without token", usecase.ErrDependencyUnavailable)
	}
	return user.AuthResult{Token: token, User: r.toUser(row.User)}, nil
}

func (r *UserRepository) toUser(row userDTO) user.User {
	return user.User{
		ID:          row.ID.String(),
		Username:    strings.TrimSpace(row.Username),
		Email:       strings.TrimSpace(row.Email),
		DisplayName: firstNonEmpty(row.DisplayName, row.FullName),
		AvatarURL:   r.client.resolveURL(firstNonEmpty(row.AvatarURL, row.Avatar)),
		CreatedAt:   row.CreatedAt.Time,
	}
}
