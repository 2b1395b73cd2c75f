package backend

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

type envelope[T any] struct {
	Success *bool  `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope[T]) message() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Error)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (b errorBody) text() string {
	if msg := strings.TrimSpace(b.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(b.Error); msg != "" {
		return msg
	}
	for _, item := range b.Errors {
		if msg := strings.TrimSpace(item.Message); msg != "" {
			return msg
		}
	}
	return ""
}

// flexID accepts ids sent either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*f = ""
	case b[0] == '"':
		var v string
		if err := sonic.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(v))
	default:
		*f = flexID(string(b))
	}
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// flexInt accepts integers sent as numbers or numeric strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(int64(v))
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime accepts the timestamp layouts the backend has been seen to emit.
// Unparseable values decode to the zero time.
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		f.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		seconds, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			f.Time = time.Time{}
			return nil
		}
		f.Time = time.Unix(seconds, 0).UTC()
		return nil
	}

	var raw string
	if err := sonic.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Time = parseTime(raw)
	return nil
}

func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type articleDTO struct {
	ID            flexID   `json:"id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Summary       string   `json:"summary"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	Author        string   `json:"author"`
	AuthorName    string   `json:"author_name"`
	ImageURL      string   `json:"image_url"`
	Image         string   `json:"image"`
	Source        string   `json:"source"`
	Tags          []string `json:"tags"`
	PublishedAt   flexTime `json:"published_at"`
	CreatedAt     flexTime `json:"created_at"`
	LikesCount    int      `json:"likes_count" validate:"gte=0"`
	IsLiked       bool     `json:"is_liked"`
	CommentsCount int      `json:"comments_count" validate:"gte=0"`
}

type commentDTO struct {
	ID         flexID       `json:"id" validate:"required"`
	NewsID     flexID       `json:"news_id"`
	ParentID   flexID       `json:"parent_id"`
	UserID     flexID       `json:"user_id"`
	Author     string       `json:"author"`
	Username   string       `json:"username"`
	AvatarURL  string       `json:"avatar_url"`
	Content    string       `json:"content" validate:"required"`
	CreatedAt  flexTime     `json:"created_at"`
	LikesCount int          `json:"likes_count" validate:"gte=0"`
	IsLiked    bool         `json:"is_liked"`
	Replies    []commentDTO `json:"replies" validate:"-"`
}

type reactionDTO struct {
	Liked      bool `json:"liked"`
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count" validate:"gte=0"`
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

type leagueDTO struct {
	ID          flexInt `json:"id" validate:"gt=0"`
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Logo        string  `json:"logo"`
	Flag        string  `json:"flag"`
	Season      flexInt `json:"season"`
	Current     bool    `json:"current"`
}

type teamRefDTO struct {
	ID   flexInt `json:"id" validate:"gt=0"`
	Name string  `json:"name" validate:"required"`
	Logo string  `json:"logo"`
}

type standingDTO struct {
	LeagueID    flexInt    `json:"league_id"`
	Season      flexInt    `json:"season"`
	Group       string     `json:"group"`
	Rank        int        `json:"rank" validate:"gte=0"`
	Team        teamRefDTO `json:"team"`
	Points      int        `json:"points"`
	GoalsDiff   int        `json:"goalsDiff"`
	Form        string     `json:"form"`
	Description string     `json:"description"`
	All         struct {
		Played int `json:"played"`
		Win    int `json:"win"`
		Draw   int `json:"draw"`
		Lose   int `json:"lose"`
		Goals  struct {
			For     int `json:"for"`
			Against int `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}

type matchDTO struct {
	Fixture struct {
		ID     flexInt  `json:"id" validate:"gt=0"`
		Date   flexTime `json:"date"`
		Venue  struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short   string `json:"short"`
			Long    string `json:"long"`
			Elapsed int    `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      flexInt `json:"id"`
		Name    string  `json:"name"`
		Logo    string  `json:"logo"`
		Country string  `json:"country"`
		Round   string  `json:"round"`
	} `json:"league"`
	Teams struct {
		Home teamRefDTO `json:"home"`
		Away teamRefDTO `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type topPlayerDTO struct {
	Player struct {
		ID          flexInt `json:"id" validate:"gt=0"`
		Name        string  `json:"name" validate:"required"`
		Photo       string  `json:"photo"`
		Nationality string  `json:"nationality"`
		Age         int     `json:"age"`
	} `json:"player"`
	Statistics []playerStatDTO `json:"statistics" validate:"-"`
}

type playerStatDTO struct {
	Team struct {
		ID   flexInt `json:"id"`
		Name string  `json:"name"`
		Logo string  `json:"logo"`
	} `json:"team"`
	Games struct {
		Position    string `json:"position"`
		Appearances int    `json:"appearences"`
		Rating      string `json:"rating"`
	} `json:"games"`
	Goals struct {
		Total   *int `json:"total"`
		Assists *int `json:"assists"`
	} `json:"goals"`
	Cards struct {
		Yellow *int `json:"yellow"`
		Red    *int `json:"red"`
	} `json:"cards"`
}

type favoriteTeamDTO struct {
	TeamID    flexInt  `json:"team_id" validate:"gt=0"`
	TeamName  string   `json:"team_name" validate:"required"`
	TeamCode  string   `json:"team_code"`
	TeamLogo  string   `json:"team_logo"`
	Country   string   `json:"country"`
	CreatedAt flexTime `json:"created_at"`
}

type favoritePlayerDTO struct {
	PlayerID    flexInt  `json:"player_id" validate:"gt=0"`
	PlayerName  string   `json:"player_name" validate:"required"`
	PlayerPhoto string   `json:"player_photo"`
	TeamID      flexInt  `json:"team_id"`
	TeamName    string   `json:"team_name"`
	Position    string   `json:"position"`
	Nationality string   `json:"nationality"`
	CreatedAt   flexTime `json:"created_at"`
}

type favoriteTeamRequest struct {
	TeamID int64 `json:"team_id"`
}

type favoritePlayerRequest struct {
	PlayerID int64 `json:"player_id"`
}

type userDTO struct {
	ID          flexID   `json:"id" validate:"required"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	FullName    string   `json:"full_name"`
	AvatarURL   string   `json:"avatar_url"`
	Avatar      string   `json:"avatar"`
	CreatedAt   flexTime `json:"created_at"`
}

type authDTO struct {
	Token       string  `json:"token"`
	AccessToken string  `json:"access_token"`
	User        userDTO `json:"user"`
}

func (a authDTO) token() string {
	return firstNonEmpty(a.Token, a.AccessToken)
}

type profileDTO struct {
	userDTO
	Bio             string `json:"bio"`
	CommentsCount   int    `json:"comments_count"`
	LikesCount      int    `json:"likes_count"`
	FavoriteTeams   int    `json:"favorite_teams_count"`
	FavoritePlayers int    `json:"favorite_players_count"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}
