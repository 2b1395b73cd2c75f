package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	leaguemock "github.com/riskibarqy/football-portal/internal/mocks/domain/league"
	matchmock "github.com/riskibarqy/football-portal/internal/mocks/domain/match"
	newsmock "github.com/riskibarqy/football-portal/internal/mocks/domain/news"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

func TestHomeService_SectionsFailIndependently(t *testing.T) {
	t.Parallel()

	newsRepo := newsmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	leagueRepo := leaguemock.NewRepository(t)

	leagues := newLeagueService(leagueRepo)
	service := NewHomeService(
		NewNewsService(newsRepo, toggle.NewRegistry(), DefaultListOptions(), logging.NewNop()),
		NewMatchService(matchRepo, leagues, "UTC", DefaultListOptions()),
		leagues,
		logging.NewNop(),
	)

	newsRepo.On("List", mock.Anything).Return(nil, ErrDependencyUnavailable).Once()
	matchRepo.On("List", mock.Anything, match.Query{Live: true, Timezone: "UTC"}).Return([]match.Match{
		{ID: 1, LeagueID: 39, Status: "1H", KickoffAt: time.Date(2026, time.October, 18, 14, 0, 0, 0, time.UTC)},
		{ID: 2, LeagueID: 39, Status: "FT"},
	}, nil).Once()
	leagueRepo.On("PrioritySequence", mock.Anything).Return([]int64{39}, nil)
	leagueRepo.On("List", mock.Anything).Return([]league.League{
		{ID: 2, Name: "Champions League"},
		{ID: 39, Name: "Premier League", Country: "England"},
	}, nil).Once()

	home := service.Get(context.Background())

	if !errors.Is(home.NewsErr, ErrDependencyUnavailable) {
		t.Fatalf("expected news section error, got %v", home.NewsErr)
	}
	require.NoError(t, home.LiveErr)
	require.NoError(t, home.LeaguesErr)
	require.Len(t, home.Live, 1)
	require.Equal(t, int64(39), home.Leagues[0].ID)
}
