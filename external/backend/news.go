package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/news"
)

var _ news.Repository = (*NewsRepository)(nil)

type NewsRepository struct {
	client *Client
}

func NewNewsRepository(client *Client) *NewsRepository {
	return &NewsRepository{client: client}
}

func (r *NewsRepository) List(ctx context.Context) ([]news.Article, error) {
	rows, err := getJSON[[]articleDTO](ctx, r.client, "/api/news", nil, false)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	rows = validItems(ctx, r.client, "article", rows)
	out := make([]news.Article, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.client.toArticle(row))
	}
	return out, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, articleID string) (news.Article, bool, error) {
	row, err := getJSON[articleDTO](ctx, r.client, "/api/news/"+url.PathEscape(articleID), nil, false)
	if err != nil {
		if isNotFound(err) {
			return news.Article{}, false, nil
		}
		return news.Article{}, false, fmt.Errorf("get news article=%s: %w", articleID, err)
	}
	if err := r.client.validOne("article", row); err != nil {
		return news.Article{}, false, err
	}

	return r.client.toArticle(row), true, nil
}

func (r *NewsRepository) ListComments(ctx context.Context, articleID string) ([]news.Comment, error) {
	rows, err := getJSON[[]commentDTO](ctx, r.client, "/api/news/"+url.PathEscape(articleID)+"/comments", nil, false)
	if err != nil {
		return nil, fmt.Errorf("list comments article=%s: %w", articleID, err)
	}

	flat := flattenComments(rows, "")
	flat = validItems(ctx, r.client, "comment", flat)
	out := make([]news.Comment, 0, len(flat))
	for _, row := range flat {
		out = append(out, r.client.toComment(row, articleID))
	}
	return out, nil
}

func (r *NewsRepository) CreateComment(ctx context.Context, input news.NewComment) (news.Comment, error) {
	row, err := sendJSON[commentDTO](ctx, r.client, http.MethodPost,
		"/api/news/"+url.PathEscape(input.ArticleID)+"/comments",
		createCommentRequest{Content: input.Body, ParentID: input.ParentID},
		true,
	)
	if err != nil {
		return news.Comment{}, fmt.Errorf("create comment article=%s: %w", input.ArticleID, err)
	}
	if row.ID == "" {
		// Some deployments answer 201 with an empty body.
		return news.Comment{ArticleID: input.ArticleID, ParentID: input.ParentID, Body: input.Body}, nil
	}
	return r.client.toComment(row, input.ArticleID), nil
}

func (r *NewsRepository) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := sendJSON[struct{}](ctx, r.client, http.MethodDelete, "/api/comments/"+url.PathEscape(commentID), nil, true); err != nil {
		return fmt.Errorf("delete comment=%s: %w", commentID, err)
	}
	return nil
}

func (r *NewsRepository) ToggleArticleLike(ctx context.Context, articleID string) (news.Reaction, error) {
	row, err := sendJSON[reactionDTO](ctx, r.client, http.MethodPost, "/api/news/"+url.PathEscape(articleID)+"/like", nil, true)
	if err != nil {
		return news.Reaction{}, fmt.Errorf("toggle article like=%s: %w", articleID, err)
	}
	return toReaction(row), nil
}

func (r *NewsRepository) ToggleCommentLike(ctx context.Context, commentID string) (news.Reaction, error) {
	row, err := sendJSON[reactionDTO](ctx, r.client, http.MethodPost, "/api/comments/"+url.PathEscape(commentID)+"/like", nil, true)
	if err != nil {
		return news.Reaction{}, fmt.Errorf("toggle comment like=%s: %w", commentID, err)
	}
	return toReaction(row), nil
}

func (c *Client) toArticle(row articleDTO) news.Article {
	published := row.PublishedAt.Time
	if published.IsZero() {
		published = row.CreatedAt.Time
	}
	tags := make([]string, 0, len(row.Tags))
	for _, tag := range row.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return news.Article{
		ID:           row.ID.String(),
		Title:        strings.TrimSpace(row.Title),
		Summary:      firstNonEmpty(row.Summary, row.Excerpt),
		Content:      row.Content,
		Category:     strings.TrimSpace(row.Category),
		Author:       firstNonEmpty(row.Author, row.AuthorName),
		ImageURL:     c.resolveURL(firstNonEmpty(row.ImageURL, row.Image)),
		Source:       strings.TrimSpace(row.Source),
		Tags:         tags,
		PublishedAt:  published,
		LikeCount:    row.LikesCount,
		Liked:        row.IsLiked,
		CommentCount: row.CommentsCount,
	}
}

func (c *Client) toComment(row commentDTO, articleID string) news.Comment {
	if row.NewsID != "" {
		articleID = row.NewsID.String()
	}
	return news.Comment{
		ID:        row.ID.String(),
		ArticleID: articleID,
		ParentID:  row.ParentID.String(),
		UserID:    row.UserID.String(),
		Author:    firstNonEmpty(row.Author, row.Username),
		AvatarURL: c.resolveURL(row.AvatarURL),
		Body:      row.Content,
		CreatedAt: row.CreatedAt.Time,
		LikeCount: row.LikesCount,
		Liked:     row.IsLiked,
	}
}

// flattenComments unrolls nested replies so the domain can rebuild the tree.
func flattenComments(rows []commentDTO, parentID flexID) []commentDTO {
	out := make([]commentDTO, 0, len(rows))
	for _, row := range rows {
		if row.ParentID == "" {
			row.ParentID = parentID
		}
		replies := row.Replies
		row.Replies = nil
		out = append(out, row)
		out = append(out, flattenComments(replies, row.ID)...)
	}
	return out
}

func toReaction(row reactionDTO) news.Reaction {
	return news.Reaction{Liked: row.Liked || row.IsLiked, Count: row.LikesCount}
}
