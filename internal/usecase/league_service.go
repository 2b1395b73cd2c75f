package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/country"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	LeagueFacetCountry = "country"
	LeagueFacetType    = "type"

	priorityCacheKey = "league-priority"
)

type LeagueServiceConfig struct {
	PriorityTTL      time.Duration
	FallbackPriority []int64
	FlagBaseURL      string
	DefaultSeason    int
	List             ListOptions
}

// LeaguePage is one window of the leagues list plus the facet choices.
type LeaguePage struct {
	listing.Page[league.League]
	Countries []string
	Types     []string
}

// StandingsView is a league table, split into groups for cups.
type StandingsView struct {
	League league.League
	Season int
	Groups []league.StandingGroup
}

type LeagueService struct {
	repo     league.Repository
	priority *cache.Store[[]int64]
	resolver *country.Resolver
	cfg      LeagueServiceConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewLeagueService(repo league.Repository, cfg LeagueServiceConfig, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PriorityTTL <= 0 {
		cfg.PriorityTTL = 10 * time.Minute
	}
	if len(cfg.FallbackPriority) == 0 {
		cfg.FallbackPriority = slices.Clone(league.FallbackPriority)
	}
	cfg.List = cfg.List.normalize()

	return &LeagueService{
		repo:     repo,
		priority: cache.NewStore[[]int64](cfg.PriorityTTL),
		resolver: country.Default(),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Priority returns the league ranking. A failed or empty backend answer falls
// back to the configured list, which is not cached so the next call retries.
func (s *LeagueService) Priority(ctx context.Context) []int64 {
	ids, err := s.priority.GetOrLoad(ctx, priorityCacheKey, func(ctx context.Context) ([]int64, error) {
		loaded, err := s.repo.PrioritySequence(ctx)
		if err != nil {
			return nil, err
		}
		if len(loaded) == 0 {
			return nil, fmt.Errorf("%w: empty league priority", ErrDependencyUnavailable)
		}
		return loaded, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "league priority unavailable, using fallback", "error", err)
		return slices.Clone(s.cfg.FallbackPriority)
	}
	return slices.Clone(ids)
}

// LeagueComparator ranks leagues by the priority sequence, then by name.
func LeagueComparator(sequence []int64) listing.Comparator[league.League] {
	return listing.Then[league.League](
		listing.PriorityComparator(sequence,
			func(l league.League) (int64, bool) { return l.ID, l.ID > 0 },
			func(l league.League) string { return l.Name },
		),
		func(a, b league.League) int { return cmp.Compare(a.ID, b.ID) },
	)
}

func LeaguePredicate(state listing.FilterState) listing.Predicate[league.League] {
	return listing.All(
		listing.SearchText(state.Query, func(l league.League) []string { return []string{l.Name, l.Country} }),
		listing.Equals(state.Facet(LeagueFacetCountry), func(l league.League) string { return l.Country }),
		listing.Equals(state.Facet(LeagueFacetType), func(l league.League) string { return l.Type }),
	)
}

// List returns every league with country codes and flag URLs filled in.
func (s *LeagueService) List(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.List")
	defer span.End()

	leagues, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	for i := range leagues {
		leagues[i] = s.enrich(leagues[i])
	}
	return leagues, nil
}

func (s *LeagueService) Page(ctx context.Context, req ListRequest) (LeaguePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Page")
	defer span.End()

	leagues, err := s.List(ctx)
	if err != nil {
		return LeaguePage{}, err
	}

	page, err := derivePage(ctx, s.cfg.List, leagues, LeaguePredicate(req.State), LeagueComparator(s.Priority(ctx)), req)
	if err != nil {
		return LeaguePage{}, err
	}

	return LeaguePage{
		Page:      page,
		Countries: facetValues(leagues, func(l league.League) string { return l.Country }),
		Types:     facetValues(leagues, func(l league.League) string { return l.Type }),
	}, nil
}

// Featured returns the first n leagues in priority order.
func (s *LeagueService) Featured(ctx context.Context, n int) ([]league.League, error) {
	leagues, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	sorted := listing.Sort(leagues, LeagueComparator(s.Priority(ctx)))
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

func (s *LeagueService) Standings(ctx context.Context, leagueID int64, season int) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	if leagueID <= 0 {
		return StandingsView{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if season <= 0 {
		season = s.defaultSeason()
	}

	rows, err := s.repo.Standings(ctx, leagueID, season)
	if err != nil {
		return StandingsView{}, fmt.Errorf("get standings: %w", err)
	}

	view := StandingsView{
		League: league.League{ID: leagueID},
		Season: season,
		Groups: league.GroupStandings(rows),
	}

	// The header is cosmetic; a failed lookup still renders the table.
	leagues, err := s.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "league lookup for standings failed", "league_id", leagueID, "error", err)
		return view, nil
	}
	for _, l := range leagues {
		if l.ID == leagueID {
			view.League = l
			break
		}
	}
	return view, nil
}

// ResolveCountry maps a country name to its flag code.
func (s *LeagueService) ResolveCountry(name string) string {
	return s.resolver.Resolve(name)
}

func (s *LeagueService) FlagURL(code string) string {
	return country.FlagURL(s.cfg.FlagBaseURL, code)
}

func (s *LeagueService) enrich(l league.League) league.League {
	code := strings.ToLower(strings.TrimSpace(l.CountryCode))
	if !country.ValidCode(code) || code == country.Unknown {
		code = s.resolver.Resolve(l.Country)
	}
	l.CountryCode = code
	if l.FlagURL == "" {
		l.FlagURL = s.FlagURL(code)
	}
	return l
}

// defaultSeason is the configured season, or the season running now. Seasons
// are named after the year they start in, and they start in July.
func (s *LeagueService) defaultSeason() int {
	if s.cfg.DefaultSeason > 0 {
		return s.cfg.DefaultSeason
	}
	now := s.now().UTC()
	if now.Month() < time.July {
		return now.Year() - 1
	}
	return now.Year()
}

// ParseID reads a positive numeric id from a path or form value.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidInput, raw)
	}
	return id, nil
}
