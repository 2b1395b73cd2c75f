package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const NewsFacetCategory = "category"

// NewsPage is one window of the news list plus the category choices.
type NewsPage struct {
	listing.Page[news.Article]
	Categories []string
}

// ArticleView is an article with its comment thread.
type ArticleView struct {
	Article      news.Article
	Comments     []news.Comment
	CommentCount int
}

type NewsService struct {
	repo     news.Repository
	toggles  toggleRunner
	opts     ListOptions
	validate *validator.Validate
	logger   *logging.Logger
}

func NewNewsService(repo news.Repository, registry *toggle.Registry, opts ListOptions, logger *logging.Logger) *NewsService {
	if logger == nil {
		logger = logging.Default()
	}
	if registry == nil {
		registry = toggle.NewRegistry()
	}

	return &NewsService{
		repo:     repo,
		toggles:  toggleRunner{registry: registry, logger: logger},
		opts:     opts.normalize(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// NewsComparator orders newest first, then by title.
func NewsComparator() listing.Comparator[news.Article] {
	return listing.Then[news.Article](
		func(a, b news.Article) int { return b.PublishedAt.Compare(a.PublishedAt) },
		func(a, b news.Article) int { return listing.CompareFold(a.Title, b.Title) },
		func(a, b news.Article) int { return strings.Compare(a.ID, b.ID) },
	)
}

// NewsPredicate matches the query against title, summary and author, and the
// category facet exactly.
func NewsPredicate(state listing.FilterState) listing.Predicate[news.Article] {
	return listing.All(
		listing.SearchText(state.Query, func(a news.Article) []string {
			return []string{a.Title, a.Summary, a.AuthorName()}
		}),
		listing.Equals(state.Facet(NewsFacetCategory), func(a news.Article) string { return a.Category }),
	)
}

func (s *NewsService) Page(ctx context.Context, req ListRequest) (NewsPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Page")
	defer span.End()

	articles, err := s.repo.List(ctx)
	if err != nil {
		return NewsPage{}, fmt.Errorf("list news: %w", err)
	}
	articles = s.overlayArticles(ctx, articles)

	page, err := derivePage(ctx, s.opts, articles, NewsPredicate(req.State), NewsComparator(), req)
	if err != nil {
		return NewsPage{}, err
	}

	return NewsPage{
		Page:       page,
		Categories: facetValues(articles, func(a news.Article) string { return a.Category }),
	}, nil
}

// Latest returns the first window of news, newest first.
func (s *NewsService) Latest(ctx context.Context) ([]news.Article, error) {
	page, err := s.Page(ctx, ListRequest{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *NewsService) Article(ctx context.Context, articleID string) (ArticleView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Article")
	defer span.End()

	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return ArticleView{}, fmt.Errorf("%w: article id is required", ErrInvalidInput)
	}

	article, exists, err := s.repo.GetByID(ctx, articleID)
	if err != nil {
		return ArticleView{}, fmt.Errorf("get article: %w", err)
	}
	if !exists {
		return ArticleView{}, fmt.Errorf("%w: article=%s", ErrNotFound, articleID)
	}

	comments, err := s.repo.ListComments(ctx, articleID)
	if err != nil {
		return ArticleView{}, fmt.Errorf("list comments: %w", err)
	}
	for i := range comments {
		state := s.toggles.overlay(ctx, toggle.KindCommentLike, comments[i].ID, toggle.State{Active: comments[i].Liked, Count: comments[i].LikeCount})
		comments[i].Liked, comments[i].LikeCount = state.Active, state.Count
	}

	thread := news.BuildThread(comments)
	article = s.overlayArticles(ctx, []news.Article{article})[0]
	total := news.CountThread(thread)
	if article.CommentCount < total {
		article.CommentCount = total
	}

	return ArticleView{Article: article, Comments: thread, CommentCount: total}, nil
}

func (s *NewsService) PostComment(ctx context.Context, input news.NewComment) (news.Comment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.PostComment")
	defer span.End()

	input.ArticleID = strings.TrimSpace(input.ArticleID)
	input.ParentID = strings.TrimSpace(input.ParentID)
	input.Body = strings.TrimSpace(input.Body)
	if err := s.validate.Struct(input); err != nil {
		return news.Comment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := authorizedSession(ctx); err != nil {
		return news.Comment{}, err
	}

	comment, err := s.repo.CreateComment(ctx, input)
	if err != nil {
		return news.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *NewsService) DeleteComment(ctx context.Context, commentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.DeleteComment")
	defer span.End()

	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return fmt.Errorf("%w: comment id is required", ErrInvalidInput)
	}
	if _, err := authorizedSession(ctx); err != nil {
		return err
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *NewsService) overlayArticles(ctx context.Context, articles []news.Article) []news.Article {
	for i := range articles {
		state := s.toggles.overlay(ctx, toggle.KindArticleLike, articles[i].ID, toggle.State{Active: articles[i].Liked, Count: articles[i].LikeCount})
		articles[i].Liked, articles[i].LikeCount = state.Active, state.Count
	}
	return articles
}
