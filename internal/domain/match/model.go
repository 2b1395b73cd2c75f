package match

import (
	"strconv"
	"strings"
	"time"
)

// Phase groups backend status codes for the status filter.
type Phase string

const (
	PhaseLive     Phase = "live"
	PhaseFinished Phase = "finished"
	PhaseUpcoming Phase = "upcoming"
	PhaseOther    Phase = "other"
)

// ParsePhase accepts the phases users can filter by. "other" is an internal
// bucket and is not accepted.
func ParsePhase(raw string) (Phase, bool) {
	switch p := Phase(strings.ToLower(strings.TrimSpace(raw))); p {
	case PhaseLive, PhaseFinished, PhaseUpcoming:
		return p, true
	default:
		return "", false
	}
}

type Side struct {
	TeamID int64
	Name   string
	Logo   string
	Goals  *int
}

// Match is one fixture on the matches page.
type Match struct {
	ID            int64
	LeagueID      int64
	LeagueName    string
	LeagueLogo    string
	LeagueCountry string
	Round         string
	Home          Side
	Away          Side
	Status        string
	StatusLong    string
	Elapsed       int
	KickoffAt     time.Time
	Venue         string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return "NS"
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "LIVE", "IN_PLAY", "1H", "HT", "2H", "ET", "BT", "P", "INT", "SUSP":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "FINISHED", "FT", "AET", "PEN", "AWD", "WO":
		return true
	default:
		return false
	}
}

func IsUpcomingStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "NS", "TBD", "SCHEDULED":
		return true
	default:
		return false
	}
}

func (m Match) Phase() Phase {
	switch {
	case IsLiveStatus(m.Status):
		return PhaseLive
	case IsFinishedStatus(m.Status):
		return PhaseFinished
	case IsUpcomingStatus(m.Status):
		return PhaseUpcoming
	default:
		return PhaseOther
	}
}

// Score renders "2 - 1", or "vs" before kickoff.
func (m Match) Score() string {
	if m.Home.Goals == nil || m.Away.Goals == nil {
		return "vs"
	}
	return strconv.Itoa(*m.Home.Goals) + " - " + strconv.Itoa(*m.Away.Goals)
}

// Query selects matches from the backend.
type Query struct {
	Date     string
	Timezone string
	LeagueID int64
	Live     bool
}
