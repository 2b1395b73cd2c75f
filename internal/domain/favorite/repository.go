package favorite

import "context"

// Repository describes the favorites endpoints. All calls are made on behalf
// of the session user found in ctx.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	AddTeam(ctx context.Context, teamID int64) error
	RemoveTeam(ctx context.Context, teamID int64) error
	ListPlayers(ctx context.Context) ([]Player, error)
	AddPlayer(ctx context.Context, playerID int64) error
	RemovePlayer(ctx context.Context, playerID int64) error
}
