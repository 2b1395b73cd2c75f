package match

import "context"

type Repository interface {
	List(ctx context.Context, query Query) ([]Match, error)
}
