package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// ReactionService toggles article and comment likes.
type ReactionService struct {
	repo    news.Repository
	toggles toggleRunner
}

func NewReactionService(repo news.Repository, registry *toggle.Registry, logger *logging.Logger) *ReactionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReactionService{
		repo:    repo,
		toggles: toggleRunner{registry: registry, logger: logger},
	}
}

// ToggleArticleLike flips the like on an article. current is the state the
// page showed when the user clicked.
func (s *ReactionService) ToggleArticleLike(ctx context.Context, articleID string, current toggle.State) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReactionService.ToggleArticleLike")
	defer span.End()

	return s.toggles.run(ctx, toggle.KindArticleLike, articleID, current, func(ctx context.Context, _ toggle.State) (toggle.State, error) {
		reaction, err := s.repo.ToggleArticleLike(ctx, articleID)
		if err != nil {
			return toggle.State{}, fmt.Errorf("toggle article like: %w", err)
		}
		return toggle.State{Active: reaction.Liked, Count: reaction.Count}, nil
	})
}

func (s *ReactionService) ToggleCommentLike(ctx context.Context, commentID string, current toggle.State) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReactionService.ToggleCommentLike")
	defer span.End()

	return s.toggles.run(ctx, toggle.KindCommentLike, commentID, current, func(ctx context.Context, _ toggle.State) (toggle.State, error) {
		reaction, err := s.repo.ToggleCommentLike(ctx, commentID)
		if err != nil {
			return toggle.State{}, fmt.Errorf("toggle comment like: %w", err)
		}
		return toggle.State{Active: reaction.Liked, Count: reaction.Count}, nil
	})
}
