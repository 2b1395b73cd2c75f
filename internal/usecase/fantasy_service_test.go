package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	fantasymock "github.com/riskibarqy/football-portal/internal/mocks/domain/fantasy"
	playermock "github.com/riskibarqy/football-portal/internal/mocks/domain/player"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

func newFantasyService(t *testing.T) (*FantasyService, *fantasymock.Repository, *playermock.Repository) {
	t.Helper()

	drafts := fantasymock.NewRepository(t)
	players := playermock.NewRepository(t)
	service := NewFantasyService(drafts, NewPlayerService(players, nil, 2, DefaultListOptions(), logging.NewNop()), fantasy.DefaultRules(), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC) }
	return service, drafts, players
}

func draftWith(picks ...fantasy.SquadPick) fantasy.Draft {
	return fantasy.Draft{SessionID: testSessionID, LeagueID: 39, Season: 2026, Name: "My Squad", BudgetCap: 1000, Picks: picks}
}

func TestFantasyService_Start_DefaultsName(t *testing.T) {
	t.Parallel()

	service, drafts, _ := newFantasyService(t)
	drafts.
		On("Upsert", mock.Anything, mock.MatchedBy(func(d fantasy.Draft) bool {
			return d.SessionID == testSessionID && d.Name == "My Squad" && d.LeagueID == 39 && d.BudgetCap == 1000
		})).
		Return(nil).
		Once()

	view, err := service.Start(anonymous(context.Background()), StartDraftInput{LeagueID: 39, Season: 2026, Name: "  "})
	require.NoError(t, err)
	require.True(t, view.Exists)
	require.False(t, view.Complete)
}

func TestFantasyService_RequiresSession(t *testing.T) {
	t.Parallel()

	service, _, _ := newFantasyService(t)

	if _, err := service.Draft(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFantasyService_AddPick(t *testing.T) {
	t.Parallel()

	ctx := anonymous(context.Background())
	service, drafts, players := newFantasyService(t)

	drafts.On("Get", mock.Anything, testSessionID).Return(draftWith(), true, nil).Once()
	players.On("Top", mock.Anything, mock.Anything).Return([]player.TopPlayer{
		topPlayer(10, "Striker", 1, player.PositionForward, 5),
	}, nil)
	drafts.
		On("Upsert", mock.Anything, mock.MatchedBy(func(d fantasy.Draft) bool {
			return len(d.Picks) == 1 && d.Picks[0].PlayerID == 10 && d.Picks[0].Price == 90
		})).
		Return(nil).
		Once()

	view, err := service.AddPick(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, view.Positions[player.PositionForward])
	require.Equal(t, "1 of 11 players picked", view.Problem)
}

func TestFantasyService_AddPick_Rejections(t *testing.T) {
	t.Parallel()

	ctx := anonymous(context.Background())
	pick := func(id, teamID int64, position player.Position) fantasy.SquadPick {
		return fantasy.SquadPick{PlayerID: id, TeamID: teamID, Position: position, Price: 60}
	}

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		service, drafts, players := newFantasyService(t)
		drafts.On("Get", mock.Anything, testSessionID).Return(draftWith(pick(10, 1, player.PositionForward)), true, nil).Once()

		_, err := service.AddPick(ctx, 10)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.ErrorIs(t, err, fantasy.ErrDuplicatePlayerInSquad)
		players.AssertNotCalled(t, "Top", mock.Anything, mock.Anything)
	})

	t.Run("unknown player", func(t *testing.T) {
		t.Parallel()

		service, drafts, players := newFantasyService(t)
		drafts.On("Get", mock.Anything, testSessionID).Return(draftWith(), true, nil).Once()
		players.On("Top", mock.Anything, mock.Anything).Return([]player.TopPlayer{topPlayer(10, "Striker", 1, player.PositionForward, 5)}, nil)

		_, err := service.AddPick(ctx, 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("team limit", func(t *testing.T) {
		t.Parallel()

		service, drafts, players := newFantasyService(t)
		drafts.On("Get", mock.Anything, testSessionID).Return(draftWith(
			pick(1, 1, player.PositionGoalkeeper),
			pick(2, 1, player.PositionDefender),
			pick(3, 1, player.PositionMidfielder),
		), true, nil).Once()
		players.On("Top", mock.Anything, mock.Anything).Return([]player.TopPlayer{topPlayer(4, "Fourth", 1, player.PositionForward, 1)}, nil)

		_, err := service.AddPick(ctx, 4)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.ErrorIs(t, err, fantasy.ErrExceededTeamLimit)
		drafts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("no draft", func(t *testing.T) {
		t.Parallel()

		service, drafts, _ := newFantasyService(t)
		drafts.On("Get", mock.Anything, testSessionID).Return(fantasy.Draft{}, false, nil).Once()

		_, err := service.AddPick(ctx, 4)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFantasyService_RemovePick(t *testing.T) {
	t.Parallel()

	ctx := anonymous(context.Background())
	service, drafts, _ := newFantasyService(t)
	existing := draftWith(fantasy.SquadPick{PlayerID: 10, TeamID: 1, Position: player.PositionForward, Price: 90})

	drafts.On("Get", mock.Anything, testSessionID).Return(existing, true, nil).Twice()
	drafts.On("Upsert", mock.Anything, mock.MatchedBy(func(d fantasy.Draft) bool { return len(d.Picks) == 0 })).Return(nil).Once()

	_, err := service.RemovePick(ctx, 11)
	require.ErrorIs(t, err, ErrNotFound)

	view, err := service.RemovePick(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, view.Draft.Picks)
	require.Len(t, existing.Picks, 1, "the stored draft must not be mutated")
}
