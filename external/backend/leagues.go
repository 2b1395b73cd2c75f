package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/league"
)

var _ league.Repository = (*LeagueRepository)(nil)

type LeagueRepository struct {
	client *Client
}

func NewLeagueRepository(client *Client) *LeagueRepository {
	return &LeagueRepository{client: client}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	rows, err := getJSON[[]leagueDTO](ctx, r.client, "/api/leagues", nil, false)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	rows = validItems(ctx, r.client, "league", rows)
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:          int64(row.ID),
			Name:        strings.TrimSpace(row.Name),
			Type:        strings.ToLower(strings.TrimSpace(row.Type)),
			Country:     strings.TrimSpace(row.Country),
			CountryCode: strings.ToLower(strings.TrimSpace(row.CountryCode)),
			LogoURL:     r.client.resolveURL(row.Logo),
			FlagURL:     r.client.resolveURL(row.Flag),
			Season:      int(row.Season),
			Current:     row.Current,
		})
	}
	return out, nil
}

// PrioritySequence returns the backend's ranking of major leagues. Invalid
// ids are skipped and duplicates keep their first position.
func (r *LeagueRepository) PrioritySequence(ctx context.Context) ([]int64, error) {
	ids, err := getJSON[[]flexInt](ctx, r.client, "/api/leagues/priority", nil, false)
	if err != nil {
		return nil, fmt.Errorf("get league priority: %w", err)
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		v := int64(id)
		if v <= 0 {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func (r *LeagueRepository) Standings(ctx context.Context, leagueID int64, season int) ([]league.Standing, error) {
	query := url.Values{}
	query.Set("league", strconv.FormatInt(leagueID, 10))
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}

	rows, err := getJSON[[]standingDTO](ctx, r.client, "/api/standings", query, false)
	if err != nil {
		return nil, fmt.Errorf("list standings league=%d season=%d: %w", leagueID, season, err)
	}

	rows = validItems(ctx, r.client, "standing", rows)
	out := make([]league.Standing, 0, len(rows))
	for _, row := range rows {
		leagueRef := int64(row.LeagueID)
		if leagueRef <= 0 {
			leagueRef = leagueID
		}
		seasonRef := int(row.Season)
		if seasonRef <= 0 {
			seasonRef = season
		}
		goalDiff := row.GoalsDiff
		if goalDiff == 0 {
			goalDiff = row.All.Goals.For - row.All.Goals.Against
		}

		out = append(out, league.Standing{
			LeagueID:     leagueRef,
			Season:       seasonRef,
			Group:        strings.TrimSpace(row.Group),
			Rank:         row.Rank,
			TeamID:       int64(row.Team.ID),
			TeamName:     strings.TrimSpace(row.Team.Name),
			TeamLogo:     r.client.resolveURL(row.Team.Logo),
			Played:       row.All.Played,
			Won:          row.All.Win,
			Draw:         row.All.Draw,
			Lost:         row.All.Lose,
			GoalsFor:     row.All.Goals.For,
			GoalsAgainst: row.All.Goals.Against,
			GoalDiff:     goalDiff,
			Points:       row.Points,
			Form:         strings.TrimSpace(row.Form),
			Description:  strings.TrimSpace(row.Description),
		})
	}
	return out, nil
}
