package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-portal/internal/domain/favorite"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	favoritemock "github.com/riskibarqy/football-portal/internal/mocks/domain/favorite"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

func TestFavoriteService_ToggleTeam_AddsAndRemoves(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := favoritemock.NewRepository(t)
	service := NewFavoriteService(repo, toggle.NewRegistry(), logging.NewNop())

	repo.On("AddTeam", mock.Anything, int64(33)).Return(nil).Once()
	repo.On("RemoveTeam", mock.Anything, int64(33)).Return(nil).Once()

	added, err := service.ToggleTeam(ctx, 33, false)
	require.NoError(t, err)
	require.True(t, added.State.Active)
	require.Equal(t, toggle.PhaseCommitted, added.Phase)

	removed, err := service.ToggleTeam(ctx, 33, true)
	require.NoError(t, err)
	require.False(t, removed.State.Active)
}

func TestFavoriteService_TogglePlayer_RollsBack(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := favoritemock.NewRepository(t)
	registry := toggle.NewRegistry()
	service := NewFavoriteService(repo, registry, logging.NewNop())

	repo.On("AddPlayer", mock.Anything, int64(276)).Return(ErrDependencyUnavailable).Once()

	got, err := service.TogglePlayer(ctx, 276, false)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got.State.Active || got.Phase != toggle.PhaseRolledBack {
		t.Fatalf("expected rollback to inactive, got %+v", got)
	}
}

func TestFavoriteService_RejectsInvalidAndAnonymous(t *testing.T) {
	t.Parallel()

	repo := favoritemock.NewRepository(t)
	service := NewFavoriteService(repo, toggle.NewRegistry(), logging.NewNop())

	if _, err := service.ToggleTeam(signedIn(context.Background()), 0, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.TogglePlayer(anonymous(context.Background()), 9, false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := service.List(anonymous(context.Background())); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from List, got %v", err)
	}
	repo.AssertNotCalled(t, "AddPlayer", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ListTeams", mock.Anything)
}

func TestFavoriteService_List_SortsByName(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := favoritemock.NewRepository(t)
	service := NewFavoriteService(repo, toggle.NewRegistry(), logging.NewNop())

	repo.On("ListTeams", mock.Anything).Return([]favorite.Team{
		{Team: team.Team{ID: 2, Name: "valencia"}},
		{Team: team.Team{ID: 1, Name: "Arsenal"}},
	}, nil).Once()
	repo.On("ListPlayers", mock.Anything).Return([]favorite.Player{
		{Player: player.Player{ID: 7, Name: "Saka"}},
		{Player: player.Player{ID: 8, Name: "Pedri"}},
	}, nil).Once()

	got, err := service.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Arsenal", got.Teams[0].Name)
	require.Equal(t, "Pedri", got.Players[0].Name)
}

func TestFavoriteService_Set_HidesPendingRemovals(t *testing.T) {
	t.Parallel()

	ctx := signedIn(context.Background())
	repo := favoritemock.NewRepository(t)
	registry := toggle.NewRegistry()
	service := NewFavoriteService(repo, registry, logging.NewNop())

	repo.On("ListTeams", mock.Anything).Return([]favorite.Team{
		{Team: team.Team{ID: 1, Name: "Arsenal"}},
		{Team: team.Team{ID: 2, Name: "Valencia"}},
	}, nil).Once()
	repo.On("ListPlayers", mock.Anything).Return([]favorite.Player{}, nil).Once()

	registry.Begin(toggle.Key{SessionID: testSessionID, Kind: toggle.KindFavoriteTeam, EntityID: "2"}, toggle.State{Active: true})

	set := service.Set(ctx)
	require.True(t, set.HasTeam(1))
	require.False(t, set.HasTeam(2), "a pending removal must not be marked")
}

func TestFavoriteService_Set_EmptyForAnonymous(t *testing.T) {
	t.Parallel()

	repo := favoritemock.NewRepository(t)
	service := NewFavoriteService(repo, toggle.NewRegistry(), logging.NewNop())

	set := service.Set(anonymous(context.Background()))
	require.Empty(t, set.Teams)
	require.Empty(t, set.Players)
}
