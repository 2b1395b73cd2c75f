package news

import "context"

// Repository describes the news endpoints use cases need. Calls that act for
// a user read the session token from ctx.
type Repository interface {
	List(ctx context.Context) ([]Article, error)
	GetByID(ctx context.Context, articleID string) (Article, bool, error)
	ListComments(ctx context.Context, articleID string) ([]Comment, error)
	CreateComment(ctx context.Context, input NewComment) (Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	ToggleArticleLike(ctx context.Context, articleID string) (Reaction, error)
	ToggleCommentLike(ctx context.Context, commentID string) (Reaction, error)
}
