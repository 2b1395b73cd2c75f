package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/football-portal/internal/domain/favorite"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// Favorites is what the favorites page shows.
type Favorites struct {
	Teams   []favorite.Team
	Players []favorite.Player
}

type FavoriteService struct {
	repo    favorite.Repository
	toggles toggleRunner
	logger  *logging.Logger
}

func NewFavoriteService(repo favorite.Repository, registry *toggle.Registry, logger *logging.Logger) *FavoriteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FavoriteService{
		repo:    repo,
		toggles: toggleRunner{registry: registry, logger: logger},
		logger:  logger,
	}
}

func (s *FavoriteService) List(ctx context.Context) (Favorites, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.List")
	defer span.End()

	if _, err := authorizedSession(ctx); err != nil {
		return Favorites{}, err
	}

	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return Favorites{}, fmt.Errorf("list favorite teams: %w", err)
	}
	players, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return Favorites{}, fmt.Errorf("list favorite players: %w", err)
	}

	teams = listing.Sort[favorite.Team](teams, func(a, b favorite.Team) int { return listing.CompareFold(a.Name, b.Name) })
	players = listing.Sort[favorite.Player](players, func(a, b favorite.Player) int { return listing.CompareFold(a.Name, b.Name) })
	return Favorites{Teams: teams, Players: players}, nil
}

// Set returns the viewer's favorites for marking list rows, with pending
// toggles applied. Anonymous viewers and backend failures get an empty set.
func (s *FavoriteService) Set(ctx context.Context) favorite.Set {
	if _, err := authorizedSession(ctx); err != nil {
		return favorite.NewSet(nil, nil)
	}

	favorites, err := s.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "favorites unavailable for list marks", "error", err)
		return favorite.NewSet(nil, nil)
	}

	set := favorite.NewSet(favorites.Teams, favorites.Players)
	for id := range set.Teams {
		if !s.toggles.overlay(ctx, toggle.KindFavoriteTeam, strconv.FormatInt(id, 10), toggle.State{Active: true}).Active {
			delete(set.Teams, id)
		}
	}
	for id := range set.Players {
		if !s.toggles.overlay(ctx, toggle.KindFavoritePlayer, strconv.FormatInt(id, 10), toggle.State{Active: true}).Active {
			delete(set.Players, id)
		}
	}
	return set
}

// ToggleTeam adds the team when current is inactive and removes it otherwise.
func (s *FavoriteService) ToggleTeam(ctx context.Context, teamID int64, current bool) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.ToggleTeam")
	defer span.End()

	if teamID <= 0 {
		return ToggleResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return s.toggles.run(ctx, toggle.KindFavoriteTeam, strconv.FormatInt(teamID, 10), toggle.State{Active: current},
		func(ctx context.Context, pending toggle.State) (toggle.State, error) {
			if pending.Active {
				if err := s.repo.AddTeam(ctx, teamID); err != nil {
					return toggle.State{}, fmt.Errorf("add favorite team: %w", err)
				}
			} else if err := s.repo.RemoveTeam(ctx, teamID); err != nil {
				return toggle.State{}, fmt.Errorf("remove favorite team: %w", err)
			}
			return pending, nil
		})
}

func (s *FavoriteService) TogglePlayer(ctx context.Context, playerID int64, current bool) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.TogglePlayer")
	defer span.End()

	if playerID <= 0 {
		return ToggleResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return s.toggles.run(ctx, toggle.KindFavoritePlayer, strconv.FormatInt(playerID, 10), toggle.State{Active: current},
		func(ctx context.Context, pending toggle.State) (toggle.State, error) {
			if pending.Active {
				if err := s.repo.AddPlayer(ctx, playerID); err != nil {
					return toggle.State{}, fmt.Errorf("add favorite player: %w", err)
				}
			} else if err := s.repo.RemovePlayer(ctx, playerID); err != nil {
				return toggle.State{}, fmt.Errorf("remove favorite player: %w", err)
			}
			return pending, nil
		})
}
