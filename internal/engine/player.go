package engine

import "github.com/google/uuid"

// Fixed piece totals per player.
const (
	TotalSettlements  = 5
	TotalCities       = 4
	TotalRoadSegments = 15
)

// Victory point values.
const (
	WinningPoints         = 10
	SettlementPoints      = 1
	CityPoints            = 2
	LargestArmyPoints     = 2
	LongestRoadPoints     = 2
	VictoryPointCardValue = 1
)

// Player holds the authoritative record for one participant. It is owned and
// mutated exclusively by the session worker.
type Player struct {
	ID   uuid.UUID
	Name string

	Resources ResourceClutch

	RemainingSettlements  int
	RemainingCities       int
	RemainingRoadSegments int

	HeldCards     map[DevelopmentCardType]int
	PlayedKnights int

	HasLargestArmy bool
	HasLongestRoad bool
}

func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{
		ID:                    id,
		Name:                  name,
		RemainingSettlements:  TotalSettlements,
		RemainingCities:       TotalCities,
		RemainingRoadSegments: TotalRoadSegments,
		HeldCards:             map[DevelopmentCardType]int{},
	}
}

// PlacedSettlements counts settlements currently on the board. Upgrading to a
// city returns the settlement piece to the player's stock.
func (p *Player) PlacedSettlements() int { return TotalSettlements - p.RemainingSettlements }

func (p *Player) PlacedCities() int { return TotalCities - p.RemainingCities }

// VictoryPoints derives the player's total from placed pieces, titles and
// held victory point cards. Never cached; recomputed after every mutation.
func (p *Player) VictoryPoints() int {
	points := p.PlacedSettlements()*SettlementPoints + p.PlacedCities()*CityPoints
	if p.HasLargestArmy {
		points += LargestArmyPoints
	}
	if p.HasLongestRoad {
		points += LongestRoadPoints
	}
	points += p.HeldCards[VictoryPointCard] * VictoryPointCardValue
	return points
}

func (p *Player) CanAfford(cost ResourceClutch) bool { return p.Resources.Covers(cost) }

func (p *Player) Pay(cost ResourceClutch) { p.Resources = p.Resources.Subtract(cost) }

func (p *Player) Receive(grant ResourceClutch) { p.Resources = p.Resources.Add(grant) }
