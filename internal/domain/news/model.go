package news

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const UnknownAuthor = "Unknown Author"

// Article is one news story from the backend.
type Article struct {
	ID           string
	Title        string
	Summary      string
	Content      string
	Category     string
	Author       string
	ImageURL     string
	Source       string
	Tags         []string
	PublishedAt  time.Time
	LikeCount    int
	Liked        bool
	CommentCount int
}

func (a Article) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("article id is required")
	}
	if a.Title == "" {
		return fmt.Errorf("article title is required")
	}

	return nil
}

// AuthorName returns the author or the placeholder used when the feed omits it.
func (a Article) AuthorName() string {
	if name := strings.TrimSpace(a.Author); name != "" {
		return name
	}
	return UnknownAuthor
}

// Comment is a reader comment. Replies only go one level deep.
type Comment struct {
	ID        string
	ArticleID string
	ParentID  string
	UserID    string
	Author    string
	AvatarURL string
	Body      string
	CreatedAt time.Time
	LikeCount int
	Liked     bool
	Replies   []Comment
}

func (c Comment) AuthorName() string {
	if name := strings.TrimSpace(c.Author); name != "" {
		return name
	}
	return UnknownAuthor
}

// NewComment is the input for posting a comment or a reply.
type NewComment struct {
	ArticleID string `validate:"required"`
	ParentID  string
	Body      string `validate:"required,min=1,max=2000"`
}

// Reaction is the like state the backend reports after a toggle.
type Reaction struct {
	Liked bool
	Count int
}

// BuildThread arranges a flat comment list into top-level comments, newest
// first, each holding its replies oldest first. A reply whose parent is
// itself a reply is attached to that reply's root. Replies to unknown parents
// are promoted to the top level.
func BuildThread(flat []Comment) []Comment {
	byID := make(map[string]Comment, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	rootOf := func(c Comment) string {
		seen := map[string]struct{}{}
		for c.ParentID != "" {
			if _, loop := seen[c.ID]; loop {
				return ""
			}
			seen[c.ID] = struct{}{}
			parent, ok := byID[c.ParentID]
			if !ok {
				return ""
			}
			c = parent
		}
		return c.ID
	}

	roots := make([]Comment, 0, len(flat))
	replies := make(map[string][]Comment)
	for _, c := range flat {
		c.Replies = nil
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		root := rootOf(c)
		if root == "" || root == c.ID {
			c.ParentID = ""
			roots = append(roots, c)
			continue
		}
		replies[root] = append(replies[root], c)
	}

	slices.SortStableFunc(roots, func(a, b Comment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	for i := range roots {
		children := replies[roots[i].ID]
		slices.SortStableFunc(children, func(a, b Comment) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		roots[i].Replies = children
	}

	return roots
}

// CountThread counts comments including replies.
func CountThread(thread []Comment) int {
	total := 0
	for _, c := range thread {
		total += 1 + len(c.Replies)
	}
	return total
}
