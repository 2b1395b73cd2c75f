package league

import (
	"fmt"
	"slices"
	"strings"
)

const (
	TypeLeague = "league"
	TypeCup    = "cup"
)

// FallbackPriority ranks major competitions when the backend cannot supply
// its own priority list: Premier League, La Liga, Serie A, Bundesliga,
// Ligue 1, Champions League, Europa League, Conference League, Primeira
// Liga, Eredivisie.
var FallbackPriority = []int64{39, 140, 135, 78, 61, 2, 3, 848, 94, 88}

// League is a competition as listed by the backend.
type League struct {
	ID          int64
	Name        string
	Type        string
	Country     string
	CountryCode string
	LogoURL     string
	FlagURL     string
	Season      int
	Current     bool
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Initials is shown when the league has no logo.
func (l League) Initials() string {
	return Initials(l.Name)
}

// Standing is one row of a league table.
type Standing struct {
	LeagueID     int64
	Season       int
	Group        string
	Rank         int
	TeamID       int64
	TeamName     string
	TeamLogo     string
	Played       int
	Won          int
	Draw         int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
	Form         string
	Description  string
}

// StandingGroup is one table. Cups have several, leagues one.
type StandingGroup struct {
	Name string
	Rows []Standing
}

// GroupStandings splits rows by group, keeping groups in first-seen order and
// rows ordered by rank.
func GroupStandings(rows []Standing) []StandingGroup {
	index := make(map[string]int)
	groups := make([]StandingGroup, 0, 1)
	for _, row := range rows {
		name := strings.TrimSpace(row.Group)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, StandingGroup{Name: name})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Rows, func(a, b Standing) int {
			return a.Rank - b.Rank
		})
	}
	return groups
}

// Initials builds up to two uppercase letters from the words of name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return strings.ToUpper(string(out))
}
