package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// HandlerOptions tune request parsing and cookies.
type HandlerOptions struct {
	List    listing.WindowConfig
	Cookies CookieConfig
}

type Handler struct {
	homeService     *usecase.HomeService
	newsService     *usecase.NewsService
	reactionService *usecase.ReactionService
	leagueService   *usecase.LeagueService
	matchService    *usecase.MatchService
	playerService   *usecase.PlayerService
	favoriteService *usecase.FavoriteService
	accountService  *usecase.AccountService
	sessionService  *usecase.SessionService
	fantasyService  *usecase.FantasyService
	renderer        *Renderer
	list            listing.WindowConfig
	cookies         CookieConfig
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	homeService *usecase.HomeService,
	newsService *usecase.NewsService,
	reactionService *usecase.ReactionService,
	leagueService *usecase.LeagueService,
	matchService *usecase.MatchService,
	playerService *usecase.PlayerService,
	favoriteService *usecase.FavoriteService,
	accountService *usecase.AccountService,
	sessionService *usecase.SessionService,
	fantasyService *usecase.FantasyService,
	renderer *Renderer,
	opts HandlerOptions,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		homeService:     homeService,
		newsService:     newsService,
		reactionService: reactionService,
		leagueService:   leagueService,
		matchService:    matchService,
		playerService:   playerService,
		favoriteService: favoriteService,
		accountService:  accountService,
		sessionService:  sessionService,
		fantasyService:  fantasyService,
		renderer:        renderer,
		list:            listing.NormalizeWindowConfig(opts.List),
		cookies:         opts.Cookies,
		logger:          logger,
		validator:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, fmt.Errorf("%w: no page at %s", usecase.ErrNotFound, r.URL.Path))
}

// render shows a page, picking up the flash message left by a redirect.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title, nav string, data any) {
	h.renderStatus(w, r, http.StatusOK, name, PageData{Title: title, Nav: nav, Data: data})
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, page PageData) {
	ctx := r.Context()
	page.Session, _ = session.FromContext(ctx)
	switch kind, message := h.cookies.takeFlash(w, r); kind {
	case flashNotice:
		page.Notice = message
	case flashError:
		if page.Banner == "" {
			page.Banner = message
		}
	}
	h.renderer.Page(ctx, w, status, name, page)
}

// fail answers a page request whose main content could not be loaded.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	h.logFailure(ctx, r, err)

	if wantsJSON(r) {
		writeError(ctx, w, err)
		return
	}
	status := mapError(err).HTTPStatus
	if status == http.StatusUnauthorized {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}
	h.renderStatus(w, r, status, "error", PageData{
		Title:  http.StatusText(status),
		Banner: bannerMessage(err),
		Data:   status,
	})
}

// back redirects a form post to target, leaving a banner for err or a notice.
func (h *Handler) back(w http.ResponseWriter, r *http.Request, target string, err error, notice string) {
	if err != nil {
		h.logFailure(r.Context(), r, err)
		h.cookies.setFlash(w, flashError, bannerMessage(err))
		if errors.Is(err, usecase.ErrUnauthorized) {
			target = "/login?next=" + url.QueryEscape(target)
		}
	} else if notice != "" {
		h.cookies.setFlash(w, flashNotice, notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) logFailure(ctx context.Context, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		h.logger.DebugContext(ctx, "request canceled", "path", r.URL.Path)
	case mapError(err).HTTPStatus >= http.StatusInternalServerError:
		h.logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "error", err)
	default:
		h.logger.WarnContext(ctx, "request rejected", "path", r.URL.Path, "error", err)
	}
}

// ensureSession returns a session with an id, opening one and setting the
// cookie for first-time visitors.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	ctx := r.Context()
	if current, ok := session.FromContext(ctx); ok && current.ID != "" {
		return r, nil
	}

	opened, err := h.sessionService.Open(ctx)
	if err != nil {
		return r, err
	}
	h.cookies.set(w, opened)
	return r.WithContext(session.WithSession(ctx, opened)), nil
}
