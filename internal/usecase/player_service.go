package usecase

import (
	"cmp"
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	PlayerFacetPosition = "position"
	PlayerFacetTeam     = "team"

	defaultLeaderWorkers = 4
)

// TopRequest selects one ranking of top players.
type TopRequest struct {
	LeagueID int64
	Season   int
	Type     player.StatType
	ListRequest
}

// TopPage is one window of a top-players ranking.
type TopPage struct {
	listing.Page[player.TopPlayer]
	LeagueID int64
	Season   int
	Type     player.StatType
	Teams    []string
}

// Leaders holds one ranking per stat type. Failed rankings are reported in
// Errors and left out of Rankings.
type Leaders struct {
	Rankings map[player.StatType][]player.TopPlayer
	Errors   map[player.StatType]error
}

type PlayerService struct {
	repo    player.Repository
	leagues *LeagueService
	workers int
	opts    ListOptions
	logger  *logging.Logger
}

func NewPlayerService(repo player.Repository, leagues *LeagueService, workers int, opts ListOptions, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultLeaderWorkers
	}

	return &PlayerService{
		repo:    repo,
		leagues: leagues,
		workers: workers,
		opts:    opts.normalize(),
		logger:  logger,
	}
}

// TopPlayerComparator orders by stat value, highest first, then by name.
func TopPlayerComparator() listing.Comparator[player.TopPlayer] {
	return listing.Then[player.TopPlayer](
		func(a, b player.TopPlayer) int { return cmp.Compare(b.Value, a.Value) },
		func(a, b player.TopPlayer) int { return listing.CompareFold(a.Name, b.Name) },
		func(a, b player.TopPlayer) int { return cmp.Compare(a.ID, b.ID) },
	)
}

func TopPlayerPredicate(state listing.FilterState) listing.Predicate[player.TopPlayer] {
	return listing.All(
		listing.SearchText(state.Query, func(p player.TopPlayer) []string {
			return []string{p.Name, p.TeamName, p.Nationality}
		}),
		listing.Equals(state.Facet(PlayerFacetPosition), func(p player.TopPlayer) string { return string(p.Position) }),
		listing.Equals(state.Facet(PlayerFacetTeam), func(p player.TopPlayer) string { return p.TeamName }),
	)
}

func (s *PlayerService) Page(ctx context.Context, req TopRequest) (TopPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Page")
	defer span.End()

	query, err := s.topQuery(req.LeagueID, req.Season, req.Type)
	if err != nil {
		return TopPage{}, err
	}

	players, err := s.repo.Top(ctx, query)
	if err != nil {
		return TopPage{}, fmt.Errorf("list top players: %w", err)
	}

	page, err := derivePage(ctx, s.opts, players, TopPlayerPredicate(req.State), TopPlayerComparator(), req.ListRequest)
	if err != nil {
		return TopPage{}, err
	}

	return TopPage{
		Page:     page,
		LeagueID: query.LeagueID,
		Season:   query.Season,
		Type:     query.Type,
		Teams:    facetValues(players, func(p player.TopPlayer) string { return p.TeamName }),
	}, nil
}

// Leaders fetches every stat ranking for a league concurrently on a bounded
// pool. It fails only when every ranking failed.
func (s *PlayerService) Leaders(ctx context.Context, leagueID int64, season int) (Leaders, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Leaders")
	defer span.End()

	if _, err := s.topQuery(leagueID, season, player.StatGoals); err != nil {
		return Leaders{}, err
	}

	pool, err := ants.NewPool(min(s.workers, len(player.AllStatTypes)))
	if err != nil {
		return Leaders{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		out     = Leaders{
			Rankings: make(map[player.StatType][]player.TopPlayer, len(player.AllStatTypes)),
			Errors:   make(map[player.StatType]error),
		}
	)

	for _, statType := range player.AllStatTypes {
		query, _ := s.topQuery(leagueID, season, statType)
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			players, err := s.repo.Top(ctx, query)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out.Errors[statType] = err
				return
			}
			out.Rankings[statType] = listing.Sort(players, TopPlayerComparator())
		}); err != nil {
			workers.Done()
			return Leaders{}, fmt.Errorf("submit ranking to worker pool: %w", err)
		}
	}
	workers.Wait()

	if len(out.Rankings) == 0 {
		for _, statType := range player.AllStatTypes {
			if rankErr, ok := out.Errors[statType]; ok {
				return Leaders{}, fmt.Errorf("list player leaders: %w", rankErr)
			}
		}
	}
	for statType, rankErr := range out.Errors {
		s.logger.WarnContext(ctx, "player ranking unavailable", "league_id", leagueID, "type", string(statType), "error", rankErr)
	}
	return out, nil
}

// Candidates merges every ranking into one list of distinct players, best
// ranked first.
func (s *PlayerService) Candidates(ctx context.Context, leagueID int64, season int) ([]player.TopPlayer, error) {
	leaders, err := s.Leaders(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	out := make([]player.TopPlayer, 0)
	for _, statType := range player.AllStatTypes {
		for _, p := range leaders.Rankings[statType] {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PlayerService) topQuery(leagueID int64, season int, statType player.StatType) (player.TopQuery, error) {
	if leagueID <= 0 {
		return player.TopQuery{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if statType == "" {
		statType = player.StatGoals
	}
	if _, ok := player.ParseStatType(string(statType)); !ok {
		return player.TopQuery{}, fmt.Errorf("%w: unknown ranking %q", ErrInvalidInput, statType)
	}
	if season <= 0 && s.leagues != nil {
		season = s.leagues.defaultSeason()
	}
	return player.TopQuery{LeagueID: leagueID, Season: season, Type: statType}, nil
}
