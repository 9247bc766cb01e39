package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroGenerator always picks index 0, so a shuffle is a no-op.
type zeroGenerator struct{}

func (zeroGenerator) RollTwoDice() (int, int) { return 1, 1 }
func (zeroGenerator) IntN(max int) int        { return 0 }

func TestResourceClutchArithmetic(t *testing.T) {
	a := ResourceClutch{Brick: 2, Lumber: 1}
	b := ResourceClutch{Brick: 1, Grain: 3}

	sum := a.Add(b)
	assert.Equal(t, ResourceClutch{Brick: 3, Grain: 3, Lumber: 1}, sum)
	assert.Equal(t, 7, sum.Total())

	diff := sum.Subtract(b)
	assert.Equal(t, a, diff)

	assert.True(t, sum.Covers(a))
	assert.False(t, a.Covers(b))
	assert.True(t, ResourceClutch{}.IsEmpty())
}

func TestResourceClutchHasNegative(t *testing.T) {
	assert.False(t, ResourceClutch{}.HasNegative())
	assert.False(t, ResourceClutch{Brick: 2, Wool: 1}.HasNegative())
	assert.True(t, ResourceClutch{Brick: 5, Grain: -1}.HasNegative())
	assert.True(t, ResourceClutch{Ore: -3}.HasNegative())

	// Covers alone is no screen: a negative requirement is always "covered".
	assert.True(t, ResourceClutch{}.Covers(ResourceClutch{Grain: -1}))
}

func TestResourceClutchKindAt(t *testing.T) {
	c := ResourceClutch{Brick: 1, Lumber: 2, Wool: 1}

	cases := []struct {
		index int
		want  ResourceKind
	}{
		{0, ResourceBrick},
		{1, ResourceLumber},
		{2, ResourceLumber},
		{3, ResourceWool},
	}
	for _, tc := range cases {
		kind, ok := c.KindAt(tc.index)
		require.True(t, ok, "index %d", tc.index)
		assert.Equal(t, tc.want, kind, "index %d", tc.index)
	}

	_, ok := c.KindAt(4)
	assert.False(t, ok)
}

func TestPlayerVictoryPointsDerived(t *testing.T) {
	p := NewPlayer(uuid.New(), "tester")
	assert.Equal(t, 0, p.VictoryPoints())

	p.RemainingSettlements -= 2 // two settlements on the board
	assert.Equal(t, 2, p.VictoryPoints())

	// Upgrading a settlement returns the piece to stock.
	p.RemainingSettlements++
	p.RemainingCities--
	assert.Equal(t, 3, p.VictoryPoints())

	p.HasLongestRoad = true
	assert.Equal(t, 5, p.VictoryPoints())

	p.HasLargestArmy = true
	p.HeldCards[VictoryPointCard] = 2
	assert.Equal(t, 9, p.VictoryPoints())
}

func TestPlayerPayAndReceive(t *testing.T) {
	p := NewPlayer(uuid.New(), "tester")
	p.Receive(ResourceClutch{Brick: 1, Grain: 1, Lumber: 1, Wool: 1})

	assert.True(t, p.CanAfford(SettlementCost))
	assert.False(t, p.CanAfford(CityCost))

	p.Pay(SettlementCost)
	assert.True(t, p.Resources.IsEmpty())
}

func TestDevelopmentCardPileComposition(t *testing.T) {
	pile := NewDevelopmentCardPile(zeroGenerator{})
	require.Equal(t, 25, pile.Remaining())

	counts := map[DevelopmentCardType]int{}
	for pile.HasCards() {
		card, ok := pile.TakeCard()
		require.True(t, ok)
		counts[card]++
	}

	assert.Equal(t, 14, counts[KnightCard])
	assert.Equal(t, 2, counts[MonopolyCard])
	assert.Equal(t, 2, counts[YearOfPlentyCard])
	assert.Equal(t, 2, counts[RoadBuildingCard])
	assert.Equal(t, 5, counts[VictoryPointCard])

	_, ok := pile.TakeCard()
	assert.False(t, ok)
}

func TestActionTypeIsAutomatic(t *testing.T) {
	assert.True(t, ActionQuitGame.IsAutomatic())
	assert.True(t, ActionRequestState.IsAutomatic())
	assert.False(t, ActionEndTurn.IsAutomatic())
	assert.False(t, ActionPlaceSettlement.IsAutomatic())
}
