package board

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jharte/settlers-backend/internal/engine"
)

func TestGeometryCounts(t *testing.T) {
	// Six columns of 7/9/11/11/9/7 locations, five of 3/4/5/4/3 hexes.
	assert.Equal(t, engine.Location(53), engine.LastLocation)
	assert.Equal(t, engine.HexID(18), engine.LastHex)

	edges := 0
	for v := 0; v < 54; v++ {
		require.NotEmpty(t, neighbors[v], "location %d has no neighbors", v)
		edges += len(neighbors[v])
	}
	// 48 vertical plus 24 horizontal edges, each counted twice.
	assert.Equal(t, 2*72, edges)

	for h := 0; h < 19; h++ {
		seen := map[engine.Location]bool{}
		for _, v := range hexVertices[h] {
			assert.False(t, seen[v], "hex %d repeats location %d", h, v)
			seen[v] = true
		}
	}
}

func TestGeometryAdjacency(t *testing.T) {
	// Spot checks across the three transition shapes.
	assert.True(t, adjacent(0, 1))   // vertical
	assert.True(t, adjacent(0, 8))   // growing transition
	assert.True(t, adjacent(16, 27)) // middle transition
	assert.True(t, adjacent(28, 38)) // shrinking transition
	assert.True(t, adjacent(45, 53))

	assert.False(t, adjacent(1, 8))
	assert.False(t, adjacent(0, 2))
	assert.False(t, adjacent(17, 27))
}

func TestRobberStartsOnDesert(t *testing.T) {
	b := NewStandard()
	assert.Equal(t, engine.HexID(9), b.RobberHex())
	// The desert never produces.
	assert.Empty(t, b.hexes[9].Resource)
	assert.Zero(t, b.hexes[9].Number)
}

func TestStartingInfrastructureRules(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()
	bob := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	r := b.PlaceStartingInfrastructure(bob, 0, 8)
	assert.Equal(t, engine.PlacementOccupied, r.Status)
	assert.Equal(t, alice, r.Owner)

	r = b.PlaceStartingInfrastructure(bob, 1, 2)
	assert.Equal(t, engine.PlacementTooClose, r.Status)
	assert.Equal(t, alice, r.Owner)

	r = b.PlaceStartingInfrastructure(bob, 54, 53)
	assert.Equal(t, engine.PlacementOutOfRange, r.Status)

	// The road must touch the new settlement.
	r = b.PlaceStartingInfrastructure(bob, 9, 20)
	assert.Equal(t, engine.PlacementNoDirectConnection, r.Status)

	require.True(t, b.PlaceStartingInfrastructure(bob, 9, 19).OK())
}

func TestPlaceSettlementNeedsOwnRoad(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	r := b.PlaceSettlement(alice, 4)
	assert.Equal(t, engine.PlacementRoadNotConnected, r.Status)

	require.True(t, b.PlaceRoadSegment(alice, 1, 2).OK())
	require.True(t, b.PlaceSettlement(alice, 2).OK())
}

func TestPlaceRoadSegmentRules(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()
	bob := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	r := b.PlaceRoadSegment(alice, 0, 2)
	assert.Equal(t, engine.PlacementNoDirectConnection, r.Status)

	r = b.PlaceRoadSegment(alice, 53, 54)
	assert.Equal(t, engine.PlacementOutOfRange, r.Status)

	r = b.PlaceRoadSegment(bob, 0, 1)
	assert.Equal(t, engine.PlacementRoadOccupied, r.Status)
	assert.Equal(t, alice, r.Owner)

	r = b.PlaceRoadSegment(bob, 2, 3)
	assert.Equal(t, engine.PlacementRoadNotConnected, r.Status)

	require.True(t, b.PlaceRoadSegment(alice, 1, 2).OK())
}

func TestPlaceCityRules(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()
	bob := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	r := b.PlaceCity(bob, 0)
	assert.Equal(t, engine.PlacementNotOwned, r.Status)
	assert.Equal(t, alice, r.Owner)

	r = b.PlaceCity(alice, 4)
	assert.Equal(t, engine.PlacementNotSettlement, r.Status)

	require.True(t, b.PlaceCity(alice, 0).OK())

	// Already a city.
	r = b.PlaceCity(alice, 0)
	assert.Equal(t, engine.PlacementNotSettlement, r.Status)
}

func TestPlaceTwoRoadSegmentsIsAtomic(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	// Second segment is nowhere near the network, so neither lands.
	r := b.PlaceTwoRoadSegments(alice, 1, 2, 50, 51)
	assert.Equal(t, engine.PlacementRoadNotConnected, r.Status)
	assert.Equal(t, 1, b.LongestRoadFor(alice))

	require.True(t, b.PlaceTwoRoadSegments(alice, 1, 2, 2, 3).OK())
	assert.Equal(t, 3, b.LongestRoadFor(alice))
}

func TestResourcesForRoll(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()

	// Location 0 touches only hex 0 (ore on 10).
	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	grants := b.ResourcesForRoll(10)
	assert.Equal(t, engine.OfKind(engine.ResourceOre, 1), grants[alice])

	// A city doubles production.
	require.True(t, b.PlaceCity(alice, 0).OK())
	grants = b.ResourcesForRoll(10)
	assert.Equal(t, engine.OfKind(engine.ResourceOre, 2), grants[alice])

	// No hex carries a 7.
	assert.Empty(t, b.ResourcesForRoll(7))
}

func TestRobberBlocksProduction(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()
	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())

	b.MoveRobber(0)
	assert.Equal(t, engine.HexID(0), b.RobberHex())
	assert.Empty(t, b.ResourcesForRoll(10))
}

func TestResourcesAt(t *testing.T) {
	b := NewStandard()

	// Location 8 sits between hex 0 (ore) and hex 3 (brick).
	c := b.ResourcesAt(8)
	assert.Equal(t, engine.ResourceClutch{Brick: 1, Ore: 1}, c)

	// Off-board locations yield nothing.
	assert.True(t, b.ResourcesAt(54).IsEmpty())
}

func TestPlayersOnHex(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()
	bob := uuid.New()

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())
	require.True(t, b.PlaceStartingInfrastructure(bob, 9, 19).OK())

	owners := b.PlayersOnHex(0)
	assert.ElementsMatch(t, []uuid.UUID{alice, bob}, owners)

	assert.Empty(t, b.PlayersOnHex(18))
	assert.Nil(t, b.PlayersOnHex(19))
}

func TestLongestRoadFor(t *testing.T) {
	b := NewStandard()
	alice := uuid.New()

	assert.Equal(t, 0, b.LongestRoadFor(alice))

	require.True(t, b.PlaceStartingInfrastructure(alice, 0, 1).OK())
	for _, e := range [][2]engine.Location{{1, 2}, {2, 3}, {3, 4}, {4, 5}} {
		require.True(t, b.PlaceRoadSegment(alice, e[0], e[1]).OK())
	}
	assert.Equal(t, 5, b.LongestRoadFor(alice))

	// A side branch does not extend the longest trail.
	require.True(t, b.PlaceRoadSegment(alice, 2, 10).OK())
	assert.Equal(t, 5, b.LongestRoadFor(alice))
}
