package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/match"
)

var _ match.Repository = (*MatchRepository)(nil)

type MatchRepository struct {
	client *Client
}

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) List(ctx context.Context, q match.Query) ([]match.Match, error) {
	query := url.Values{}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	if q.Timezone != "" {
		query.Set("timezone", q.Timezone)
	}
	if q.LeagueID > 0 {
		query.Set("league", strconv.FormatInt(q.LeagueID, 10))
	}
	if q.Live {
		query.Set("live", "all")
	}

	rows, err := getJSON[[]matchDTO](ctx, r.client, "/api/matches", query, false)
	if err != nil {
		return nil, fmt.Errorf("list matches date=%s league=%d: %w", q.Date, q.LeagueID, err)
	}

	rows = validItems(ctx, r.client, "match", rows)
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:            int64(row.Fixture.ID),
			LeagueID:      int64(row.League.ID),
			LeagueName:    strings.TrimSpace(row.League.Name),
			LeagueLogo:    r.client.resolveURL(row.League.Logo),
			LeagueCountry: strings.TrimSpace(row.League.Country),
			Round:         strings.TrimSpace(row.League.Round),
			Home: match.Side{
				TeamID: int64(row.Teams.Home.ID),
				Name:   strings.TrimSpace(row.Teams.Home.Name),
				Logo:   r.client.resolveURL(row.Teams.Home.Logo),
				Goals:  row.Goals.Home,
			},
			Away: match.Side{
				TeamID: int64(row.Teams.Away.ID),
				Name:   strings.TrimSpace(row.Teams.Away.Name),
				Logo:   r.client.resolveURL(row.Teams.Away.Logo),
				Goals:  row.Goals.Away,
			},
			Status:     match.NormalizeStatus(row.Fixture.Status.Short),
			StatusLong: strings.TrimSpace(row.Fixture.Status.Long),
			Elapsed:    row.Fixture.Status.Elapsed,
			KickoffAt:  row.Fixture.Date.Time,
			Venue:      strings.TrimSpace(row.Fixture.Venue.Name),
		})
	}
	return out, nil
}
