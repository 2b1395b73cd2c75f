package favorite

import (
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/team"
)

type Team struct {
	team.Team
	AddedAt time.Time
}

type Player struct {
	player.Player
	AddedAt time.Time
}

// Set is the viewer's favorites, indexed for lookups while rendering lists.
type Set struct {
	Teams   map[int64]struct{}
	Players map[int64]struct{}
}

func NewSet(teams []Team, players []Player) Set {
	set := Set{
		Teams:   make(map[int64]struct{}, len(teams)),
		Players: make(map[int64]struct{}, len(players)),
	}
	for _, t := range teams {
		set.Teams[t.ID] = struct{}{}
	}
	for _, p := range players {
		set.Players[p.ID] = struct{}{}
	}
	return set
}

func (s Set) HasTeam(id int64) bool {
	_, ok := s.Teams[id]
	return ok
}

func (s Set) HasPlayer(id int64) bool {
	_, ok := s.Players[id]
	return ok
}
