package fantasy

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/player"
)

// SquadPick represents one selected player in a draft squad.
type SquadPick struct {
	PlayerID int64
	TeamID   int64
	Name     string
	TeamName string
	Position player.Position
	Price    int64
}

// Draft is a squad being assembled in one browser session.
type Draft struct {
	SessionID string
	LeagueID  int64
	Season    int
	Name      string
	Picks     []SquadPick
	BudgetCap int64
	UpdatedAt time.Time
}

func (d Draft) ValidateBasic() error {
	if d.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if d.LeagueID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if d.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}

	return nil
}

func (d Draft) Spent() int64 {
	var total int64
	for _, pick := range d.Picks {
		total += pick.Price
	}
	return total
}

func (d Draft) Remaining() int64 {
	return d.BudgetCap - d.Spent()
}

func (d Draft) Has(playerID int64) bool {
	for _, pick := range d.Picks {
		if pick.PlayerID == playerID {
			return true
		}
	}
	return false
}

var basePrice = map[player.Position]int64{
	player.PositionGoalkeeper: 45,
	player.PositionDefender:   50,
	player.PositionMidfielder: 65,
	player.PositionForward:    75,
}

const maxPrice = 130

// PriceFor derives a draft price from a player's ranking. Players without a
// known position are priced as midfielders.
func PriceFor(p player.TopPlayer) int64 {
	base, ok := basePrice[p.Position]
	if !ok {
		base = basePrice[player.PositionMidfielder]
	}
	price := base + int64(p.Value)*3
	if price > maxPrice {
		price = maxPrice
	}
	return price
}

// PickFrom builds a squad pick for a ranked player.
func PickFrom(p player.TopPlayer) SquadPick {
	position := p.Position
	if position == "" {
		position = player.PositionMidfielder
	}
	return SquadPick{
		PlayerID: p.ID,
		TeamID:   p.TeamID,
		Name:     p.Name,
		TeamName: p.TeamName,
		Position: position,
		Price:    PriceFor(p),
	}
}
