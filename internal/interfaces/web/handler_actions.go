package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

type toggleRequest struct {
	Active bool `json:"active"`
	Count  int  `json:"count" validate:"gte=0"`
}

type toggleResponse struct {
	Active     bool   `json:"active"`
	Count      int    `json:"count"`
	Phase      string `json:"phase"`
	Superseded bool   `json:"superseded"`
}

func (h *Handler) PostComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.PostComment")
	defer span.End()
	r = r.WithContext(ctx)

	articleID := r.PathValue("articleID")
	target := articlePath(articleID) + "#comments"
	if err := parseForm(r, w); err != nil {
		h.back(w, r, target, err, "")
		return
	}

	_, err := h.newsService.PostComment(ctx, news.NewComment{
		ArticleID: articleID,
		ParentID:  r.PostFormValue("parent_id"),
		Body:      r.PostFormValue("body"),
	})
	h.back(w, r, target, err, "Comment posted.")
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.DeleteComment")
	defer span.End()
	r = r.WithContext(ctx)

	err := h.newsService.DeleteComment(ctx, r.PathValue("commentID"))
	h.back(w, r, articlePath(r.PathValue("articleID"))+"#comments", err, "Comment deleted.")
}

// LikeArticleForm is the no-script fallback for the like button.
func (h *Handler) LikeArticleForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.LikeArticleForm")
	defer span.End()
	r = r.WithContext(ctx)

	articleID := r.PathValue("articleID")
	current, err := toggleFromForm(r, w)
	if err == nil {
		_, err = h.reactionService.ToggleArticleLike(ctx, articleID, current)
	}
	h.back(w, r, articlePath(articleID), err, "")
}

func (h *Handler) LikeCommentForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.LikeCommentForm")
	defer span.End()
	r = r.WithContext(ctx)

	current, err := toggleFromForm(r, w)
	if err == nil {
		_, err = h.reactionService.ToggleCommentLike(ctx, r.PathValue("commentID"), current)
	}
	h.back(w, r, articlePath(r.PathValue("articleID"))+"#comments", err, "")
}

func (h *Handler) FavoriteTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.FavoriteTeamForm")
	defer span.End()
	r = r.WithContext(ctx)

	teamID, err := pathID(r, "teamID")
	var current toggle.State
	if err == nil {
		current, err = toggleFromForm(r, w)
	}
	if err == nil {
		_, err = h.favoriteService.ToggleTeam(ctx, teamID, current.Active)
	}
	h.back(w, r, safeRedirect(r.PostFormValue("next"), "/favorites"), err, "")
}

func (h *Handler) FavoritePlayerForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.FavoritePlayerForm")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, err := pathID(r, "playerID")
	var current toggle.State
	if err == nil {
		current, err = toggleFromForm(r, w)
	}
	if err == nil {
		_, err = h.favoriteService.TogglePlayer(ctx, playerID, current.Active)
	}
	h.back(w, r, safeRedirect(r.PostFormValue("next"), "/favorites"), err, "")
}

func (h *Handler) ToggleArticleLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ToggleArticleLike")
	defer span.End()
	r = r.WithContext(ctx)

	h.toggleJSON(w, r, func(req toggleRequest) (usecase.ToggleResult, error) {
		return h.reactionService.ToggleArticleLike(ctx, r.PathValue("articleID"), toggle.State{Active: req.Active, Count: req.Count})
	})
}

func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ToggleCommentLike")
	defer span.End()
	r = r.WithContext(ctx)

	h.toggleJSON(w, r, func(req toggleRequest) (usecase.ToggleResult, error) {
		return h.reactionService.ToggleCommentLike(ctx, r.PathValue("commentID"), toggle.State{Active: req.Active, Count: req.Count})
	})
}

func (h *Handler) ToggleFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ToggleFavoriteTeam")
	defer span.End()
	r = r.WithContext(ctx)

	h.toggleJSON(w, r, func(req toggleRequest) (usecase.ToggleResult, error) {
		teamID, err := pathID(r, "teamID")
		if err != nil {
			return usecase.ToggleResult{}, err
		}
		return h.favoriteService.ToggleTeam(ctx, teamID, req.Active)
	})
}

func (h *Handler) ToggleFavoritePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ToggleFavoritePlayer")
	defer span.End()
	r = r.WithContext(ctx)

	h.toggleJSON(w, r, func(req toggleRequest) (usecase.ToggleResult, error) {
		playerID, err := pathID(r, "playerID")
		if err != nil {
			return usecase.ToggleResult{}, err
		}
		return h.favoriteService.TogglePlayer(ctx, playerID, req.Active)
	})
}

// toggleJSON decodes the state the page shows, runs the toggle and answers
// with the state the page should show next.
func (h *Handler) toggleJSON(w http.ResponseWriter, r *http.Request, run func(toggleRequest) (usecase.ToggleResult, error)) {
	ctx := r.Context()

	var req toggleRequest
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(req)
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toggleResponse{
		Active:     result.State.Active,
		Count:      result.State.Count,
		Phase:      string(result.Phase),
		Superseded: result.Superseded,
	})
}

// toggleFromForm reads the shown state from the hidden fields of a toggle
// form.
func toggleFromForm(r *http.Request, w http.ResponseWriter) (toggle.State, error) {
	if err := parseForm(r, w); err != nil {
		return toggle.State{}, err
	}
	state := toggle.State{Active: isTruthy(r.PostFormValue("active"))}
	if raw := strings.TrimSpace(r.PostFormValue("count")); raw != "" {
		count, err := strconv.Atoi(raw)
		if err == nil && count > 0 {
			state.Count = count
		}
	}
	return state, nil
}

func articlePath(articleID string) string {
	return "/news/" + url.PathEscape(strings.TrimSpace(articleID))
}
