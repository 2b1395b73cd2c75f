package usecase

import (
	"cmp"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
)

const (
	MatchFacetLeague = "league"
	MatchFacetStatus = "status"

	dateLayout = "2006-01-02"
)

// MatchRequest selects one day of matches.
type MatchRequest struct {
	Date     string
	Timezone string
	ListRequest
}

// LeagueOption is one entry of the league filter.
type LeagueOption struct {
	ID   int64
	Name string
}

// MatchPage is one window of the matches list for a day.
type MatchPage struct {
	listing.Page[match.Match]
	Date     string
	Timezone string
	Leagues  []LeagueOption
	Counts   map[match.Phase]int
}

type MatchService struct {
	repo            match.Repository
	leagues         *LeagueService
	defaultTimezone string
	opts            ListOptions
	now             func() time.Time
}

func NewMatchService(repo match.Repository, leagues *LeagueService, defaultTimezone string, opts ListOptions) *MatchService {
	if strings.TrimSpace(defaultTimezone) == "" {
		defaultTimezone = "UTC"
	}

	return &MatchService{
		repo:            repo,
		leagues:         leagues,
		defaultTimezone: defaultTimezone,
		opts:            opts.normalize(),
		now:             time.Now,
	}
}

// MatchComparator orders by league priority, then kickoff, then id.
func MatchComparator(sequence []int64) listing.Comparator[match.Match] {
	return listing.Then[match.Match](
		listing.PriorityComparator(sequence,
			func(m match.Match) (int64, bool) { return m.LeagueID, m.LeagueID > 0 },
			func(m match.Match) string { return m.LeagueName },
		),
		func(a, b match.Match) int { return a.KickoffAt.Compare(b.KickoffAt) },
		func(a, b match.Match) int { return cmp.Compare(a.ID, b.ID) },
	)
}

// MatchPredicate matches the query against both teams and the league, the
// league facet by id, and the status facet by phase. Unknown statuses leave
// the list unfiltered.
func MatchPredicate(state listing.FilterState) listing.Predicate[match.Match] {
	return listing.All(
		listing.SearchText(state.Query, func(m match.Match) []string {
			return []string{m.Home.Name, m.Away.Name, m.LeagueName}
		}),
		listing.Equals(state.Facet(MatchFacetLeague), func(m match.Match) string {
			return strconv.FormatInt(m.LeagueID, 10)
		}),
		listing.Equals(statusFacet(state), func(m match.Match) string { return string(m.Phase()) }),
	)
}

// statusFacet returns the requested phase, or "" (inactive) for anything that
// is not a known phase.
func statusFacet(state listing.FilterState) string {
	phase, ok := match.ParsePhase(state.Facet(MatchFacetStatus))
	if !ok {
		return ""
	}
	return string(phase)
}

func (s *MatchService) Page(ctx context.Context, req MatchRequest) (MatchPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Page")
	defer span.End()

	date, timezone, err := s.resolveDay(req.Date, req.Timezone)
	if err != nil {
		return MatchPage{}, err
	}

	matches, err := s.repo.List(ctx, match.Query{Date: date, Timezone: timezone})
	if err != nil {
		return MatchPage{}, fmt.Errorf("list matches: %w", err)
	}

	page, err := derivePage(ctx, s.opts, matches, MatchPredicate(req.State), MatchComparator(s.priority(ctx)), req.ListRequest)
	if err != nil {
		return MatchPage{}, err
	}

	counts := make(map[match.Phase]int, 4)
	for _, m := range matches {
		counts[m.Phase()]++
	}

	return MatchPage{
		Page:     page,
		Date:     date,
		Timezone: timezone,
		Leagues:  leagueOptions(matches),
		Counts:   counts,
	}, nil
}

// Live returns the matches in play right now, in display order.
func (s *MatchService) Live(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Live")
	defer span.End()

	matches, err := s.repo.List(ctx, match.Query{Live: true, Timezone: s.defaultTimezone})
	if err != nil {
		return nil, fmt.Errorf("list live matches: %w", err)
	}

	live := listing.Filter[match.Match](matches, func(m match.Match) bool { return m.Phase() == match.PhaseLive })
	return listing.Sort(live, MatchComparator(s.priority(ctx))), nil
}

func (s *MatchService) priority(ctx context.Context) []int64 {
	if s.leagues == nil {
		return nil
	}
	return s.leagues.Priority(ctx)
}

// resolveDay validates the requested day and timezone. An empty date means
// today in that timezone.
func (s *MatchService) resolveDay(date, timezone string) (string, string, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		timezone = s.defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", "", fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, timezone)
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().In(loc).Format(dateLayout), timezone, nil
	}
	if _, err := time.ParseInLocation(dateLayout, date, loc); err != nil {
		return "", "", fmt.Errorf("%w: date must look like 2006-01-02", ErrInvalidInput)
	}
	return date, timezone, nil
}

func leagueOptions(matches []match.Match) []LeagueOption {
	seen := make(map[int64]struct{})
	out := make([]LeagueOption, 0)
	for _, m := range matches {
		if m.LeagueID <= 0 {
			continue
		}
		if _, ok := seen[m.LeagueID]; ok {
			continue
		}
		seen[m.LeagueID] = struct{}{}
		out = append(out, LeagueOption{ID: m.LeagueID, Name: m.LeagueName})
	}
	return listing.Sort[LeagueOption](out, func(a, b LeagueOption) int { return listing.CompareFold(a.Name, b.Name) })
}
