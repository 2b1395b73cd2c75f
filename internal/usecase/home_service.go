package usecase

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const featuredLeagueCount = 8

// Home is the landing page. Each section fails on its own; a failed section
// carries its error and the rest still render.
type Home struct {
	News       []news.Article
	NewsErr    error
	Live       []match.Match
	LiveErr    error
	Leagues    []league.League
	LeaguesErr error
}

type HomeService struct {
	news    *NewsService
	matches *MatchService
	leagues *LeagueService
	logger  *logging.Logger
}

func NewHomeService(newsSvc *NewsService, matches *MatchService, leagues *LeagueService, logger *logging.Logger) *HomeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &HomeService{
		news:    newsSvc,
		matches: matches,
		leagues: leagues,
		logger:  logger,
	}
}

func (s *HomeService) Get(ctx context.Context) Home {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Get")
	defer span.End()

	var out Home
	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() {
		out.News, out.NewsErr = s.news.Latest(ctx)
	})
	p.Go(func() {
		out.Live, out.LiveErr = s.matches.Live(ctx)
	})
	p.Go(func() {
		out.Leagues, out.LeaguesErr = s.leagues.Featured(ctx, featuredLeagueCount)
	})
	p.Wait()

	for section, err := range map[string]error{"news": out.NewsErr, "live": out.LiveErr, "leagues": out.LeaguesErr} {
		if err != nil {
			s.logger.WarnContext(ctx, "home section unavailable", "section", section, "error", err)
		}
	}
	return out
}
