package league

import "context"

// Repository describes the league endpoints use cases need.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	PrioritySequence(ctx context.Context) ([]int64, error)
	Standings(ctx context.Context, leagueID int64, season int) ([]Standing, error)
}
