package web

import (
	"net/http"

	"github.com/riskibarqy/football-portal/internal/usecase"
)

// The list endpoints back the "load more" button. They take the same query
// parameters as the pages and return the widened window.

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListNews")
	defer span.End()
	r = r.WithContext(ctx)

	page, err := h.newsService.Page(ctx, listRequest(r, h.list, usecase.NewsFacetCategory))
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsListDTO{
		Items:      mapSlice(page.Items, toArticleDTO),
		Categories: page.Categories,
		Meta:       metaOf(r, page.Page),
	})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListLeagues")
	defer span.End()
	r = r.WithContext(ctx)

	page, err := h.leagueService.Page(ctx, listRequest(r, h.list, usecase.LeagueFacetCountry, usecase.LeagueFacetType))
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueListDTO{
		Items:     mapSlice(page.Items, toLeagueDTO),
		Countries: page.Countries,
		Types:     page.Types,
		Meta:      metaOf(r, page.Page),
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListMatches")
	defer span.End()
	r = r.WithContext(ctx)

	req, err := h.matchRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.matchService.Page(ctx, req)
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{
		Items:    mapSlice(page.Items, toMatchDTO),
		Date:     page.Date,
		Timezone: page.Timezone,
		Counts:   phaseCounts(page.Counts),
		Meta:     metaOf(r, page.Page),
	})
}

func (h *Handler) ListTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListTopPlayers")
	defer span.End()
	r = r.WithContext(ctx)

	req, err := h.topRequest(r, nil)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.playerService.Page(ctx, req)
	if err != nil {
		h.logFailure(ctx, r, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, topPlayerListDTO{
		Items:    mapSlice(page.Items, toTopPlayerDTO),
		LeagueID: page.LeagueID,
		Season:   page.Season,
		Type:     string(page.Type),
		Teams:    page.Teams,
		Meta:     metaOf(r, page.Page),
	})
}
