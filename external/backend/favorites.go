package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/favorite"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/team"
)

var _ favorite.Repository = (*FavoriteRepository)(nil)

type FavoriteRepository struct {
	client *Client
}

func NewFavoriteRepository(client *Client) *FavoriteRepository {
	return &FavoriteRepository{client: client}
}

func (r *FavoriteRepository) ListTeams(ctx context.Context) ([]favorite.Team, error) {
	rows, err := getJSON[[]favoriteTeamDTO](ctx, r.client, "/api/favorites/teams", nil, true)
	if err != nil {
		return nil, fmt.Errorf("list favorite teams: %w", err)
	}

	rows = validItems(ctx, r.client, "favorite_team", rows)
	out := make([]favorite.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.Team{
			Team: team.Team{
				ID:      int64(row.TeamID),
				Name:    strings.TrimSpace(row.TeamName),
				Code:    strings.TrimSpace(row.TeamCode),
				Country: strings.TrimSpace(row.Country),
				LogoURL: r.client.resolveURL(row.TeamLogo),
			},
			AddedAt: row.CreatedAt.Time,
		})
	}
	return out, nil
}

func (r *FavoriteRepository) AddTeam(ctx context.Context, teamID int64) error {
	if _, err := sendJSON[struct{}](ctx, r.client, http.MethodPost, "/api/favorites/teams", favoriteTeamRequest{TeamID: teamID}, true); err != nil {
		return fmt.Errorf("add favorite team=%d: %w", teamID, err)
	}
	return nil
}

func (r *FavoriteRepository) RemoveTeam(ctx context.Context, teamID int64) error {
	path := "/api/favorites/teams/" + strconv.FormatInt(teamID, 10)
	if _, err := sendJSON[struct{}](ctx, r.client, http.MethodDelete, path, nil, true); err != nil {
		return fmt.Errorf("remove favorite team=%d: %w", teamID, err)
	}
	return nil
}

func (r *FavoriteRepository) ListPlayers(ctx context.Context) ([]favorite.Player, error) {
	rows, err := getJSON[[]favoritePlayerDTO](ctx, r.client, "/api/favorites/players", nil, true)
	if err != nil {
		return nil, fmt.Errorf("list favorite players: %w", err)
	}

	rows = validItems(ctx, r.client, "favorite_player", rows)
	out := make([]favorite.Player, 0, len(rows))
	for _, row := range rows {
		p := player.Player{
			ID:          int64(row.PlayerID),
			Name:        strings.TrimSpace(row.PlayerName),
			PhotoURL:    r.client.resolveURL(row.PlayerPhoto),
			Nationality: strings.TrimSpace(row.Nationality),
			TeamID:      int64(row.TeamID),
			TeamName:    strings.TrimSpace(row.TeamName),
		}
		if pos, ok := player.ParsePosition(row.Position); ok {
			p.Position = pos
		}
		out = append(out, favorite.Player{Player: p, AddedAt: row.CreatedAt.Time})
	}
	return out, nil
}

func (r *FavoriteRepository) AddPlayer(ctx context.Context, playerID int64) error {
	if _, err := sendJSON[struct{}](ctx, r.client, http.MethodPost, "/api/favorites/players", favoritePlayerRequest{PlayerID: playerID}, true); err != nil {
		return fmt.Errorf("add favorite player=%d: %w", playerID, err)
	}
	return nil
}

func (r *FavoriteRepository) RemovePlayer(ctx context.Context, playerID int64) error {
	path := "/api/favorites/players/" + strconv.FormatInt(playerID, 10)
	if _, err := sendJSON[struct{}](ctx, r.client, http.MethodDelete, path, nil, true); err != nil {
		return fmt.Errorf("remove favorite player=%d: %w", playerID, err)
	}
	return nil
}
