package player

import (
	"fmt"
	"strings"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition accepts both short codes and the long names used by feeds.
func ParsePosition(raw string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GK", "G", "GOALKEEPER":
		return PositionGoalkeeper, true
	case "DEF", "D", "DEFENDER":
		return PositionDefender, true
	case "MID", "M", "MIDFIELDER":
		return PositionMidfielder, true
	case "FWD", "F", "FW", "ATTACKER", "FORWARD":
		return PositionForward, true
	default:
		return "", false
	}
}

// StatType is the ranking a top-players list is built from.
type StatType string

const (
	StatGoals       StatType = "goals"
	StatAssists     StatType = "assists"
	StatYellowCards StatType = "yellow_cards"
	StatRedCards    StatType = "red_cards"
)

var AllStatTypes = []StatType{StatGoals, StatAssists, StatYellowCards, StatRedCards}

func ParseStatType(raw string) (StatType, bool) {
	value := StatType(strings.ToLower(strings.TrimSpace(raw)))
	for _, st := range AllStatTypes {
		if st == value {
			return st, true
		}
	}
	return "", false
}

// Player is a footballer as the backend describes one.
type Player struct {
	ID          int64
	Name        string
	PhotoURL    string
	Nationality string
	Age         int
	TeamID      int64
	TeamName    string
	TeamLogo    string
	Position    Position
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Position != "" {
		if _, ok := AllPositions[p.Position]; !ok {
			return fmt.Errorf("invalid player position: %s", p.Position)
		}
	}

	return nil
}

// TopPlayer is one row of a top-players ranking.
type TopPlayer struct {
	Player
	Stat        StatType
	Value       int
	Appearances int
	Rating      float64
}

// TopQuery selects a ranking from the backend.
type TopQuery struct {
	LeagueID int64
	Season   int
	Type     StatType
}
