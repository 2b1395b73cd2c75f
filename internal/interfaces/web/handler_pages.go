package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/favorite"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

type homeView struct {
	usecase.Home
	NewsBanner    string
	LiveBanner    string
	LeaguesBanner string
}

type newsListView struct {
	usecase.NewsPage
	Query    string
	Category string
	More     listMeta
}

type articleView struct {
	usecase.ArticleView
}

type leagueListView struct {
	usecase.LeaguePage
	Query   string
	Country string
	Type    string
	More    listMeta
}

type standingsView struct {
	usecase.StandingsView
}

type matchListView struct {
	usecase.MatchPage
	Query       string
	League      string
	Status      string
	PhaseCounts map[string]int
	More        listMeta
}

type topPlayersView struct {
	usecase.TopPage
	Query     string
	Position  string
	Team      string
	Leagues   []league.League
	StatTypes []player.StatType
	Positions []player.Position
	Favorites favorite.Set
	More      listMeta
}

type leadersView struct {
	LeagueID int64
	Season   int
	Leagues  []league.League
	Sections []leaderSection
}

type leaderSection struct {
	Type    player.StatType
	Players []player.TopPlayer
	Banner  string
}

var positionChoices = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Home")
	defer span.End()

	home := h.homeService.Get(ctx)
	h.render(w, r.WithContext(ctx), "home", "Football Portal", "home", homeView{
		Home:          home,
		NewsBanner:    bannerMessage(home.NewsErr),
		LiveBanner:    bannerMessage(home.LiveErr),
		LeaguesBanner: bannerMessage(home.LeaguesErr),
	})
}

func (h *Handler) NewsList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.NewsList")
	defer span.End()
	r = r.WithContext(ctx)

	req := listRequest(r, h.list, usecase.NewsFacetCategory)
	page, err := h.newsService.Page(ctx, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "news", "News", "news", newsListView{
		NewsPage: page,
		Query:    req.State.Query,
		Category: req.State.Facet(usecase.NewsFacetCategory),
		More:     metaOf(r, page.Page),
	})
}

func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Article")
	defer span.End()
	r = r.WithContext(ctx)

	view, err := h.newsService.Article(ctx, r.PathValue("articleID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "article", view.Article.Title, "news", articleView{ArticleView: view})
}

func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Leagues")
	defer span.End()
	r = r.WithContext(ctx)

	req := listRequest(r, h.list, usecase.LeagueFacetCountry, usecase.LeagueFacetType)
	page, err := h.leagueService.Page(ctx, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "leagues", "Leagues", "leagues", leagueListView{
		LeaguePage: page,
		Query:      req.State.Query,
		Country:    req.State.Facet(usecase.LeagueFacetCountry),
		Type:       req.State.Facet(usecase.LeagueFacetType),
		More:       metaOf(r, page.Page),
	})
}

func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Standings")
	defer span.End()
	r = r.WithContext(ctx)

	leagueID, season, err := leagueSeason(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view, err := h.leagueService.Standings(ctx, leagueID, season)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	title := "Standings"
	if view.League.Name != "" {
		title = view.League.Name + " standings"
	}
	h.render(w, r, "standings", title, "leagues", standingsView{StandingsView: view})
}

func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Matches")
	defer span.End()
	r = r.WithContext(ctx)

	req, err := h.matchRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.matchService.Page(ctx, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "matches", "Matches", "matches", matchListView{
		MatchPage:   page,
		Query:       req.State.Query,
		League:      req.State.Facet(usecase.MatchFacetLeague),
		Status:      req.State.Facet(usecase.MatchFacetStatus),
		PhaseCounts: phaseCounts(page.Counts),
		More:        metaOf(r, page.Page),
	})
}

func (h *Handler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.TopPlayers")
	defer span.End()
	r = r.WithContext(ctx)

	leagues := h.leagueChoices(r)
	req, err := h.topRequest(r, leagues)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.playerService.Page(ctx, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "players", "Top players", "players", topPlayersView{
		TopPage:   page,
		Query:     req.State.Query,
		Position:  req.State.Facet(usecase.PlayerFacetPosition),
		Team:      req.State.Facet(usecase.PlayerFacetTeam),
		Leagues:   leagues,
		StatTypes: player.AllStatTypes,
		Positions: positionChoices,
		Favorites: h.favoriteService.Set(ctx),
		More:      metaOf(r, page.Page),
	})
}

func (h *Handler) Leaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Leaders")
	defer span.End()
	r = r.WithContext(ctx)

	leagues := h.leagueChoices(r)
	leagueID, season, err := leagueSeason(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if leagueID == 0 && len(leagues) > 0 {
		leagueID = leagues[0].ID
	}

	leaders, err := h.playerService.Leaders(ctx, leagueID, season)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	sections := make([]leaderSection, 0, len(player.AllStatTypes))
	for _, statType := range player.AllStatTypes {
		sections = append(sections, leaderSection{
			Type:    statType,
			Players: leaders.Rankings[statType],
			Banner:  bannerMessage(leaders.Errors[statType]),
		})
	}
	h.render(w, r, "leaders", "League leaders", "players", leadersView{
		LeagueID: leagueID,
		Season:   season,
		Leagues:  leagues,
		Sections: sections,
	})
}

func (h *Handler) matchRequest(r *http.Request) (usecase.MatchRequest, error) {
	query := r.URL.Query()
	if query.Get(usecase.MatchFacetStatus) == "" && isTruthy(query.Get("live")) {
		query.Set(usecase.MatchFacetStatus, "live")
		r.URL.RawQuery = query.Encode()
	}
	if league := strings.TrimSpace(query.Get(usecase.MatchFacetLeague)); league != "" && !strings.EqualFold(league, "all") {
		if _, err := usecase.ParseID(league); err != nil {
			return usecase.MatchRequest{}, err
		}
	}

	return usecase.MatchRequest{
		Date:        query.Get("date"),
		Timezone:    query.Get("timezone"),
		ListRequest: listRequest(r, h.list, usecase.MatchFacetLeague, usecase.MatchFacetStatus),
	}, nil
}

// topRequest falls back to the first listed league when none was chosen.
func (h *Handler) topRequest(r *http.Request, leagues []league.League) (usecase.TopRequest, error) {
	leagueID, season, err := leagueSeason(r)
	if err != nil {
		return usecase.TopRequest{}, err
	}
	if leagueID == 0 && len(leagues) > 0 {
		leagueID = leagues[0].ID
	}

	statType := player.StatGoals
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, ok := player.ParseStatType(raw)
		if !ok {
			return usecase.TopRequest{}, fmt.Errorf("%w: unknown ranking %q", usecase.ErrInvalidInput, raw)
		}
		statType = parsed
	}

	return usecase.TopRequest{
		LeagueID:    leagueID,
		Season:      season,
		Type:        statType,
		ListRequest: listRequest(r, h.list, usecase.PlayerFacetPosition, usecase.PlayerFacetTeam),
	}, nil
}

// leagueChoices feeds league pickers. A failure leaves the picker empty.
func (h *Handler) leagueChoices(r *http.Request) []league.League {
	ctx := r.Context()
	leagues, err := h.leagueService.Featured(ctx, 0)
	if err != nil {
		h.logger.WarnContext(ctx, "league choices unavailable", "error", err)
		return nil
	}
	return leagues
}

// leagueSeason reads the optional league and season query parameters.
func leagueSeason(r *http.Request) (int64, int, error) {
	query := r.URL.Query()
	var leagueID int64
	if raw := strings.TrimSpace(query.Get("league")); raw != "" {
		id, err := usecase.ParseID(raw)
		if err != nil {
			return 0, 0, err
		}
		leagueID = id
	}
	season, err := queryInt(query, "season")
	if err != nil {
		return 0, 0, err
	}
	return leagueID, season, nil
}

func phaseCounts(counts map[match.Phase]int) map[string]int {
	out := make(map[string]int, 4)
	for _, phase := range []match.Phase{match.PhaseLive, match.PhaseFinished, match.PhaseUpcoming, match.PhaseOther} {
		out[string(phase)] = counts[phase]
	}
	return out
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
