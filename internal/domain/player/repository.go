package player

import "context"

type Repository interface {
	Top(ctx context.Context, query TopQuery) ([]TopPlayer, error)
}
