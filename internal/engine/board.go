package engine

import "github.com/google/uuid"

// Location is a settlement location index. The fixed geometry exposes
// locations 0 through LastLocation.
type Location int

// HexID indexes one of the 19 production hexes.
type HexID int

const (
	LastLocation Location = 53
	LastHex      HexID    = 18
)

// PlacementStatus tags the outcome of a board mutation. Callers branch on the
// tag; the board never signals rule failures through errors.
type PlacementStatus int

const (
	PlacementOK PlacementStatus = iota
	PlacementOutOfRange
	PlacementOccupied
	PlacementTooClose
	PlacementRoadNotConnected
	PlacementRoadOccupied
	PlacementNoDirectConnection
	PlacementNotOwned
	PlacementNotSettlement
)

// PlacementResult carries the status plus the occupying owner when relevant.
type PlacementResult struct {
	Status PlacementStatus
	Owner  uuid.UUID
}

func (r PlacementResult) OK() bool { return r.Status == PlacementOK }

// Board is the query surface the state machine consumes. The fixed geometry,
// adjacency and production tables live behind it.
type Board interface {
	// PlaceStartingInfrastructure places a settlement and one touching road
	// segment, bypassing the network-connectivity rule.
	PlaceStartingInfrastructure(player uuid.UUID, settlement, roadEnd Location) PlacementResult
	PlaceSettlement(player uuid.UUID, loc Location) PlacementResult
	PlaceCity(player uuid.UUID, loc Location) PlacementResult
	PlaceRoadSegment(player uuid.UUID, a, b Location) PlacementResult
	// PlaceTwoRoadSegments places both segments or neither (road building
	// card). The failing segment's result is returned on failure.
	PlaceTwoRoadSegments(player uuid.UUID, a1, b1, a2, b2 Location) PlacementResult

	// ResourcesForRoll returns the per-player production for a dice total,
	// excluding the robber's hex. Cities produce double.
	ResourcesForRoll(roll int) map[uuid.UUID]ResourceClutch
	// ResourcesAt returns one of each resource produced by the hexes touching
	// a location. Used for the setup pass 2 starting grant.
	ResourcesAt(loc Location) ResourceClutch

	// PlayersOnHex lists owners of settlements or cities touching a hex.
	PlayersOnHex(hex HexID) []uuid.UUID
	RobberHex() HexID
	MoveRobber(hex HexID)

	// LongestRoadFor returns the player's longest contiguous road length.
	LongestRoadFor(player uuid.UUID) int
}
