package web

import (
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/news"
	"github.com/riskibarqy/football-portal/internal/domain/player"
)

type articleDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	Category     string    `json:"category,omitempty"`
	Author       string    `json:"author"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	PublishedAt  time.Time `json:"publishedAt"`
	LikeCount    int       `json:"likeCount"`
	Liked        bool      `json:"liked"`
	CommentCount int       `json:"commentCount"`
}

type leagueDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode"`
	LogoURL     string `json:"logoUrl,omitempty"`
	FlagURL     string `json:"flagUrl,omitempty"`
	Initials    string `json:"initials"`
}

type sideDTO struct {
	TeamID int64  `json:"teamId"`
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
	Goals  *int   `json:"goals"`
}

type matchDTO struct {
	ID         int64     `json:"id"`
	LeagueID   int64     `json:"leagueId"`
	LeagueName string    `json:"leagueName"`
	Home       sideDTO   `json:"home"`
	Away       sideDTO   `json:"away"`
	Status     string    `json:"status"`
	Phase      string    `json:"phase"`
	Elapsed    int       `json:"elapsed,omitempty"`
	KickoffAt  time.Time `json:"kickoffAt"`
	Venue      string    `json:"venue,omitempty"`
}

type topPlayerDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhotoURL    string  `json:"photoUrl,omitempty"`
	Nationality string  `json:"nationality,omitempty"`
	TeamID      int64   `json:"teamId"`
	TeamName    string  `json:"teamName"`
	Position    string  `json:"position,omitempty"`
	Stat        string  `json:"stat"`
	Value       int     `json:"value"`
	Appearances int     `json:"appearances"`
	Rating      float64 `json:"rating,omitempty"`
}

type newsListDTO struct {
	Items      []articleDTO `json:"items"`
	Categories []string     `json:"categories"`
	Meta       listMeta     `json:"meta"`
}

type leagueListDTO struct {
	Items     []leagueDTO `json:"items"`
	Countries []string    `json:"countries"`
	Types     []string    `json:"types"`
	Meta      listMeta    `json:"meta"`
}

type matchListDTO struct {
	Items    []matchDTO     `json:"items"`
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Counts   map[string]int `json:"counts"`
	Meta     listMeta       `json:"meta"`
}

type topPlayerListDTO struct {
	Items    []topPlayerDTO `json:"items"`
	LeagueID int64          `json:"leagueId"`
	Season   int            `json:"season"`
	Type     string         `json:"type"`
	Teams    []string       `json:"teams"`
	Meta     listMeta       `json:"meta"`
}

func mapSlice[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func toArticleDTO(a news.Article) articleDTO {
	return articleDTO{
		ID:           a.ID,
		Title:        a.Title,
		Summary:      a.Summary,
		Category:     a.Category,
		Author:       a.AuthorName(),
		ImageURL:     a.ImageURL,
		PublishedAt:  a.PublishedAt,
		LikeCount:    a.LikeCount,
		Liked:        a.Liked,
		CommentCount: a.CommentCount,
	}
}

func toLeagueDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type,
		Country:     l.Country,
		CountryCode: l.CountryCode,
		LogoURL:     l.LogoURL,
		FlagURL:     flagPath(l.CountryCode),
		Initials:    l.Initials(),
	}
}

func toSideDTO(s match.Side) sideDTO {
	return sideDTO{TeamID: s.TeamID, Name: s.Name, Logo: s.Logo, Goals: s.Goals}
}

func toMatchDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		LeagueID:   m.LeagueID,
		LeagueName: m.LeagueName,
		Home:       toSideDTO(m.Home),
		Away:       toSideDTO(m.Away),
		Status:     m.Status,
		Phase:      string(m.Phase()),
		Elapsed:    m.Elapsed,
		KickoffAt:  m.KickoffAt,
		Venue:      m.Venue,
	}
}

func toTopPlayerDTO(p player.TopPlayer) topPlayerDTO {
	return topPlayerDTO{
		ID:          p.ID,
		Name:        p.Name,
		PhotoURL:    p.PhotoURL,
		Nationality: p.Nationality,
		TeamID:      p.TeamID,
		TeamName:    p.TeamName,
		Position:    string(p.Position),
		Stat:        string(p.Stat),
		Value:       p.Value,
		Appearances: p.Appearances,
		Rating:      p.Rating,
	}
}
