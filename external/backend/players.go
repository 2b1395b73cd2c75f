package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/player"
)

var _ player.Repository = (*PlayerRepository)(nil)

type PlayerRepository struct {
	client *Client
}

func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) Top(ctx context.Context, q player.TopQuery) ([]player.TopPlayer, error) {
	statType := q.Type
	if statType == "" {
		statType = player.StatGoals
	}

	query := url.Values{}
	query.Set("league", strconv.FormatInt(q.LeagueID, 10))
	if q.Season > 0 {
		query.Set("season", strconv.Itoa(q.Season))
	}
	query.Set("type", string(statType))

	rows, err := getJSON[[]topPlayerDTO](ctx, r.client, "/api/players/top", query, false)
	if err != nil {
		return nil, fmt.Errorf("list top players league=%d type=%s: %w", q.LeagueID, statType, err)
	}

	rows = validItems(ctx, r.client, "top_player", rows)
	out := make([]player.TopPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toTopPlayer(row, statType))
	}
	return out, nil
}

func (r *PlayerRepository) toTopPlayer(row topPlayerDTO, statType player.StatType) player.TopPlayer {
	out := player.TopPlayer{
		Player: player.Player{
			ID:          int64(row.Player.ID),
			Name:        strings.TrimSpace(row.Player.Name),
			PhotoURL:    r.client.resolveURL(row.Player.Photo),
			Nationality: strings.TrimSpace(row.Player.Nationality),
			Age:         row.Player.Age,
		},
		Stat: statType,
	}
	if len(row.Statistics) == 0 {
		return out
	}

	// The first statistics entry is the competition the ranking was built for.
	stat := row.Statistics[0]
	out.TeamID = int64(stat.Team.ID)
	out.TeamName = strings.TrimSpace(stat.Team.Name)
	out.TeamLogo = r.client.resolveURL(stat.Team.Logo)
	if pos, ok := player.ParsePosition(stat.Games.Position); ok {
		out.Position = pos
	}
	out.Appearances = stat.Games.Appearances
	if rating, err := strconv.ParseFloat(strings.TrimSpace(stat.Games.Rating), 64); err == nil {
		out.Rating = rating
	}

	switch statType {
	case player.StatAssists:
		out.Value = intOrZero(stat.Goals.Assists)
	case player.StatYellowCards:
		out.Value = intOrZero(stat.Cards.Yellow)
	case player.StatRedCards:
		out.Value = intOrZero(stat.Cards.Red)
	default:
		out.Value = intOrZero(stat.Goals.Total)
	}
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
