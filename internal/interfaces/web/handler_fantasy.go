package web

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const fantasyPath = "/fantasy"

type fantasyView struct {
	usecase.DraftView
	Rules            fantasy.Rules
	Leagues          []league.League
	Candidates       []fantasy.SquadPick
	CandidatesBanner string
	Positions        []player.Position
}

type startDraftForm struct {
	LeagueID int64  `validate:"gt=0"`
	Season   int    `validate:"gte=0"`
	Name     string `validate:"max=64"`
}

func (h *Handler) Fantasy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Fantasy")
	defer span.End()
	r = r.WithContext(ctx)

	view := fantasyView{
		Rules:     h.fantasyService.Rules(),
		Positions: positionChoices,
	}
	view.Draft.BudgetCap = view.Rules.BudgetCap

	if current, _ := session.FromContext(ctx); current.ID != "" {
		draft, err := h.fantasyService.Draft(ctx)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		view.DraftView = draft
	}

	if view.Exists {
		candidates, err := h.fantasyService.Candidates(ctx)
		if err != nil {
			h.logFailure(ctx, r, err)
			view.CandidatesBanner = bannerMessage(err)
		}
		view.Candidates = candidates
	} else {
		view.Leagues = h.leagueChoices(r)
	}

	h.render(w, r, "fantasy", "Fantasy draft", "fantasy", view)
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.StartDraft")
	defer span.End()
	r = r.WithContext(ctx)

	if err := parseForm(r, w); err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}
	leagueID, err := usecase.ParseID(r.PostFormValue("league"))
	if err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}
	season, err := queryInt(r.PostForm, "season")
	if err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}
	form := startDraftForm{LeagueID: leagueID, Season: season, Name: strings.TrimSpace(r.PostFormValue("name"))}
	if err := h.validateRequest(ctx, form); err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}

	r, err = h.ensureSession(w, r)
	if err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}
	_, err = h.fantasyService.Start(r.Context(), usecase.StartDraftInput{
		LeagueID: form.LeagueID,
		Season:   form.Season,
		Name:     form.Name,
	})
	h.back(w, r, fantasyPath, err, "Draft started. Pick your squad.")
}

func (h *Handler) AddPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AddPick")
	defer span.End()
	r = r.WithContext(ctx)

	if err := parseForm(r, w); err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}
	playerID, err := usecase.ParseID(r.PostFormValue("player_id"))
	if err != nil {
		h.back(w, r, fantasyPath, err, "")
		return
	}

	view, err := h.fantasyService.AddPick(ctx, playerID)
	notice := "Player added."
	if err == nil && view.Complete {
		notice = "Your squad is complete."
	}
	h.back(w, r, fantasyPath, err, notice)
}

func (h *Handler) RemovePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.RemovePick")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, err := pathID(r, "playerID")
	if err == nil {
		_, err = h.fantasyService.RemovePick(ctx, playerID)
	}
	h.back(w, r, fantasyPath, err, "Player removed.")
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ResetDraft")
	defer span.End()
	r = r.WithContext(ctx)

	h.back(w, r, fantasyPath, h.fantasyService.Reset(ctx), "Draft cleared.")
}
