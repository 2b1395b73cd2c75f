package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/football-portal/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrExceededTeamLimit      = errors.New("max players from same team exceeded")
	ErrInsufficientFormation  = errors.New("minimum formation requirement not met")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
)

// formationOrder fixes the order positions are checked and reported in.
var formationOrder = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

// Rules stores draft squad validation parameters.
type Rules struct {
	SquadSize         int
	BudgetCap         int64
	MaxPlayersPerTeam int
	MinByPosition     map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:         11,
		BudgetCap:         1000,
		MaxPlayersPerTeam: 3,
		MinByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   3,
			player.PositionMidfielder: 3,
			player.PositionForward:    1,
		},
	}
}

// Shortfall returns how many players each position still needs to reach the
// minimum formation. Positions already satisfied are left out.
func (r Rules) Shortfall(picks []SquadPick) map[player.Position]int {
	counted := make(map[player.Position]int, len(formationOrder))
	for _, pick := range picks {
		counted[pick.Position]++
	}

	out := make(map[player.Position]int)
	for _, pos := range formationOrder {
		if need := r.MinByPosition[pos] - counted[pos]; need > 0 {
			out[pos] = need
		}
	}
	return out
}

// ValidatePicks checks a complete squad.
func ValidatePicks(picks []SquadPick, rules Rules) error {
	if len(picks) != rules.SquadSize {
		return fmt.Errorf("%w: a squad needs %d players, this one has %d", ErrInvalidSquadSize, rules.SquadSize, len(picks))
	}

	t, err := tallyPicks(picks, rules)
	if err != nil {
		return err
	}
	for _, pos := range formationOrder {
		if have, need := t.byPosition[pos], rules.MinByPosition[pos]; have < need {
			return fmt.Errorf("%w: pick at least %d %s, you have %d", ErrInsufficientFormation, need, pos, have)
		}
	}
	return nil
}

// ValidatePicksPartial checks a squad that is still being built. Size and
// formation may be short, but the remaining slots must still be able to
// cover the formation.
func ValidatePicksPartial(picks []SquadPick, rules Rules) error {
	switch {
	case len(picks) == 0:
		return fmt.Errorf("%w: pick at least one player", ErrInvalidSquadSize)
	case len(picks) > rules.SquadSize:
		return fmt.Errorf("%w: a squad holds at most %d players", ErrInvalidSquadSize, rules.SquadSize)
	}

	if _, err := tallyPicks(picks, rules); err != nil {
		return err
	}

	missing := 0
	for _, need := range rules.Shortfall(picks) {
		missing += need
	}
	if open := rules.SquadSize - len(picks); missing > open {
		return fmt.Errorf("%w: %d slots left but the formation still needs %d players", ErrInsufficientFormation, open, missing)
	}
	return nil
}

type tally struct {
	seen       map[int64]struct{}
	byTeam     map[int64]int
	byPosition map[player.Position]int
	spent      int64
}

func tallyPicks(picks []SquadPick, rules Rules) (tally, error) {
	t := tally{
		seen:       make(map[int64]struct{}, len(picks)),
		byTeam:     make(map[int64]int),
		byPosition: make(map[player.Position]int, len(formationOrder)),
	}
	for _, pick := range picks {
		if err := t.add(pick, rules); err != nil {
			return tally{}, err
		}
	}
	if t.spent > rules.BudgetCap {
		return tally{}, fmt.Errorf("%w: squad costs %d of a %d budget", ErrExceededBudget, t.spent, rules.BudgetCap)
	}
	return t, nil
}

func (t *tally) add(pick SquadPick, rules Rules) error {
	switch {
	case pick.PlayerID <= 0:
		return errors.New("player id is required")
	case pick.TeamID <= 0:
		return fmt.Errorf("%s has no team", pickLabel(pick))
	case pick.Price <= 0:
		return fmt.Errorf("%s has no price", pickLabel(pick))
	}
	if _, dup := t.seen[pick.PlayerID]; dup {
		return fmt.Errorf("%w: %s is already picked", ErrDuplicatePlayerInSquad, pickLabel(pick))
	}
	if _, ok := player.AllPositions[pick.Position]; !ok {
		return fmt.Errorf("%w: %s plays %q", ErrUnknownPlayerPosition, pickLabel(pick), pick.Position)
	}

	t.seen[pick.PlayerID] = struct{}{}
	t.byTeam[pick.TeamID]++
	if t.byTeam[pick.TeamID] > rules.MaxPlayersPerTeam {
		return fmt.Errorf("%w: at most %d players from %s", ErrExceededTeamLimit, rules.MaxPlayersPerTeam, teamLabel(pick))
	}
	t.byPosition[pick.Position]++
	t.spent += pick.Price
	return nil
}

func pickLabel(pick SquadPick) string {
	if pick.Name != "" {
		return pick.Name
	}
	return fmt.Sprintf("player %d", pick.PlayerID)
}

func teamLabel(pick SquadPick) string {
	if pick.TeamName != "" {
		return pick.TeamName
	}
	return fmt.Sprintf("team %d", pick.TeamID)
}
