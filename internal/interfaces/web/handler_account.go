package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// avatarFormOverhead leaves room for the multipart framing around the file.
const avatarFormOverhead = 64 << 10

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Next     string
}

type registerForm struct {
	Username    string `validate:"required"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required"`
	DisplayName string
	Next        string
}

type authView struct {
	Email       string
	Username    string
	DisplayName string
	Next        string
}

type profileView struct {
	Profile   user.Profile
	MaxAvatar int
}

type favoritesView struct {
	usecase.Favorites
}

type userDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if current, _ := session.FromContext(r.Context()); current.Authenticated() {
		http.Redirect(w, r, safeRedirect(r.URL.Query().Get("next"), "/"), http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", "Sign in", "login", authView{Next: r.URL.Query().Get("next")})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Login")
	defer span.End()
	r = r.WithContext(ctx)

	if err := parseForm(r, w); err != nil {
		h.authFailed(w, r, "login", "Sign in", authView{}, err)
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Next:     r.PostFormValue("next"),
	}
	view := authView{Email: form.Email, Next: form.Next}
	if err := h.validateRequest(ctx, form); err != nil {
		h.authFailed(w, r, "login", "Sign in", view, err)
		return
	}

	current, _ := session.FromContext(ctx)
	signedIn, err := h.accountService.Login(ctx, current, user.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		h.authFailed(w, r, "login", "Sign in", view, err)
		return
	}

	h.cookies.set(w, signedIn)
	h.back(w, r, safeRedirect(form.Next, "/"), nil, "Welcome back, "+signedIn.User.Name()+".")
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", "Create account", "login", authView{Next: r.URL.Query().Get("next")})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Register")
	defer span.End()
	r = r.WithContext(ctx)

	if err := parseForm(r, w); err != nil {
		h.authFailed(w, r, "register", "Create account", authView{}, err)
		return
	}
	form := registerForm{
		Username:    strings.TrimSpace(r.PostFormValue("username")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		DisplayName: strings.TrimSpace(r.PostFormValue("display_name")),
		Next:        r.PostFormValue("next"),
	}
	view := authView{Email: form.Email, Username: form.Username, DisplayName: form.DisplayName, Next: form.Next}
	if err := h.validateRequest(ctx, form); err != nil {
		h.authFailed(w, r, "register", "Create account", view, err)
		return
	}

	current, _ := session.FromContext(ctx)
	signedIn, err := h.accountService.Register(ctx, current, user.Registration{
		Username:    form.Username,
		Email:       form.Email,
		Password:    form.Password,
		DisplayName: form.DisplayName,
	})
	if err != nil {
		h.authFailed(w, r, "register", "Create account", view, err)
		return
	}

	h.cookies.set(w, signedIn)
	h.back(w, r, safeRedirect(form.Next, "/"), nil, "Your account is ready.")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Logout")
	defer span.End()
	r = r.WithContext(ctx)

	current, _ := session.FromContext(ctx)
	if err := h.accountService.Logout(ctx, current); err != nil {
		h.logger.WarnContext(ctx, "logout failed", "error", err)
	}
	h.cookies.clear(w)
	h.back(w, r, "/", nil, "You are signed out.")
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Profile")
	defer span.End()
	r = r.WithContext(ctx)

	profile, err := h.accountService.Profile(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "profile", profile.Name(), "profile", profileView{Profile: profile, MaxAvatar: usecase.MaxAvatarBytes})
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.UploadAvatar")
	defer span.End()
	r = r.WithContext(ctx)

	filename, data, err := readAvatar(w, r)
	if err != nil {
		h.back(w, r, "/profile", err, "")
		return
	}
	if _, err := h.accountService.UploadAvatar(ctx, filename, data); err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			h.fail(w, r, err)
			return
		}
		h.back(w, r, "/profile", err, "")
		return
	}
	h.back(w, r, "/profile", nil, "Avatar updated.")
}

func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Favorites")
	defer span.End()
	r = r.WithContext(ctx)

	favorites, err := h.favoriteService.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "favorites", "Favorites", "favorites", favoritesView{Favorites: favorites})
}

// Me refreshes and returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Me")
	defer span.End()

	current, err := h.accountService.Me(ctx)
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toUserDTO(current.User))
}

func (h *Handler) authFailed(w http.ResponseWriter, r *http.Request, page, title string, view authView, err error) {
	h.logFailure(r.Context(), r, err)
	h.renderStatus(w, r, mapError(err).HTTPStatus, page, PageData{
		Title:  title,
		Nav:    "login",
		Banner: bannerMessage(err),
		Data:   view,
	})
}

func readAvatar(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxAvatarBytes+avatarFormOverhead)
	if err := r.ParseMultipartForm(usecase.MaxAvatarBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("%w: avatar must be at most 2 MiB", usecase.ErrInvalidInput)
		}
		return "", nil, fmt.Errorf("%w: invalid upload: %v", usecase.ErrInvalidInput, err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("avatar")
	if err != nil {
		return "", nil, fmt.Errorf("%w: choose an image to upload", usecase.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxAvatarBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("%w: read upload: %v", usecase.ErrInvalidInput, err)
	}
	return header.Filename, data, nil
}

func toUserDTO(u user.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Name:        u.Name(),
		Initials:    u.Initials(),
		AvatarURL:   u.AvatarURL,
	}
}
