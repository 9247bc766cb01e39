// Package board implements the fixed-geometry board the game engine consumes
// through its query surface: placement legality, production lookups and the
// robber. All mutation happens on the owning session's worker, so the type
// carries no locking of its own.
package board

import (
	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

type piece struct {
	owner uuid.UUID
	city  bool
}

// Standard is the fixed standard board. Implements engine.Board.
type Standard struct {
	hexes       [19]Hex
	settlements map[engine.Location]*piece
	roads       map[edge]uuid.UUID
	robber      engine.HexID
}

func NewStandard() *Standard {
	return &Standard{
		hexes:       standardLayout,
		settlements: map[engine.Location]*piece{},
		roads:       map[edge]uuid.UUID{},
		robber:      desertHex,
	}
}

func ok() engine.PlacementResult {
	return engine.PlacementResult{Status: engine.PlacementOK}
}

func status(s engine.PlacementStatus) engine.PlacementResult {
	return engine.PlacementResult{Status: s}
}

// checkSettlementSite applies the range, occupancy and distance rules shared
// by setup and normal settlement placement.
func (b *Standard) checkSettlementSite(loc engine.Location) engine.PlacementResult {
	if !onBoard(loc) {
		return status(engine.PlacementOutOfRange)
	}
	if p, taken := b.settlements[loc]; taken {
		return engine.PlacementResult{Status: engine.PlacementOccupied, Owner: p.owner}
	}
	for _, n := range neighbors[loc] {
		if p, taken := b.settlements[n]; taken {
			return engine.PlacementResult{Status: engine.PlacementTooClose, Owner: p.owner}
		}
	}
	return ok()
}

func (b *Standard) PlaceStartingInfrastructure(player uuid.UUID, settlement, roadEnd engine.Location) engine.PlacementResult {
	if r := b.checkSettlementSite(settlement); !r.OK() {
		return r
	}
	if !onBoard(roadEnd) {
		return status(engine.PlacementOutOfRange)
	}
	if !adjacent(settlement, roadEnd) {
		return status(engine.PlacementNoDirectConnection)
	}
	key := edgeKey(settlement, roadEnd)
	if owner, taken := b.roads[key]; taken {
		return engine.PlacementResult{Status: engine.PlacementRoadOccupied, Owner: owner}
	}
	b.settlements[settlement] = &piece{owner: player}
	b.roads[key] = player
	return ok()
}

func (b *Standard) PlaceSettlement(player uuid.UUID, loc engine.Location) engine.PlacementResult {
	if r := b.checkSettlementSite(loc); !r.OK() {
		return r
	}
	// Outside setup a settlement must sit on the player's own road network.
	connected := false
	for _, n := range neighbors[loc] {
		if b.roads[edgeKey(loc, n)] == player {
			connected = true
			break
		}
	}
	if !connected {
		return status(engine.PlacementRoadNotConnected)
	}
	b.settlements[loc] = &piece{owner: player}
	return ok()
}

func (b *Standard) PlaceCity(player uuid.UUID, loc engine.Location) engine.PlacementResult {
	if !onBoard(loc) {
		return status(engine.PlacementOutOfRange)
	}
	p, taken := b.settlements[loc]
	if !taken || p.city {
		return status(engine.PlacementNotSettlement)
	}
	if p.owner != player {
		return engine.PlacementResult{Status: engine.PlacementNotOwned, Owner: p.owner}
	}
	p.city = true
	return ok()
}

func (b *Standard) PlaceRoadSegment(player uuid.UUID, a, c engine.Location) engine.PlacementResult {
	if !onBoard(a) || !onBoard(c) {
		return status(engine.PlacementOutOfRange)
	}
	if !adjacent(a, c) {
		return status(engine.PlacementNoDirectConnection)
	}
	key := edgeKey(a, c)
	if owner, taken := b.roads[key]; taken {
		return engine.PlacementResult{Status: engine.PlacementRoadOccupied, Owner: owner}
	}
	if !b.touchesNetwork(player, a) && !b.touchesNetwork(player, c) {
		return status(engine.PlacementRoadNotConnected)
	}
	b.roads[key] = player
	return ok()
}

func (b *Standard) PlaceTwoRoadSegments(player uuid.UUID, a1, b1, a2, b2 engine.Location) engine.PlacementResult {
	first := b.PlaceRoadSegment(player, a1, b1)
	if !first.OK() {
		return first
	}
	second := b.PlaceRoadSegment(player, a2, b2)
	if !second.OK() {
		// Both or neither.
		delete(b.roads, edgeKey(a1, b1))
		return second
	}
	return ok()
}

// touchesNetwork reports whether the player has a settlement, city or road at
// the location.
func (b *Standard) touchesNetwork(player uuid.UUID, loc engine.Location) bool {
	if p, taken := b.settlements[loc]; taken && p.owner == player {
		return true
	}
	for _, n := range neighbors[loc] {
		if b.roads[edgeKey(loc, n)] == player {
			return true
		}
	}
	return false
}

func (b *Standard) ResourcesForRoll(roll int) map[uuid.UUID]engine.ResourceClutch {
	grants := map[uuid.UUID]engine.ResourceClutch{}
	for h := range b.hexes {
		hex := b.hexes[h]
		if hex.Number != roll || engine.HexID(h) == b.robber || hex.Resource == "" {
			continue
		}
		for _, v := range hexVertices[h] {
			p, taken := b.settlements[v]
			if !taken {
				continue
			}
			n := 1
			if p.city {
				n = 2
			}
			grants[p.owner] = grants[p.owner].Add(engine.OfKind(hex.Resource, n))
		}
	}
	return grants
}

func (b *Standard) ResourcesAt(loc engine.Location) engine.ResourceClutch {
	var c engine.ResourceClutch
	if !onBoard(loc) {
		return c
	}
	for _, h := range vertexHexes[loc] {
		if r := b.hexes[h].Resource; r != "" {
			c = c.Add(engine.OfKind(r, 1))
		}
	}
	return c
}

func (b *Standard) PlayersOnHex(hex engine.HexID) []uuid.UUID {
	if hex < 0 || hex > engine.LastHex {
		return nil
	}
	seen := map[uuid.UUID]bool{}
	var owners []uuid.UUID
	for _, v := range hexVertices[hex] {
		if p, taken := b.settlements[v]; taken && !seen[p.owner] {
			seen[p.owner] = true
			owners = append(owners, p.owner)
		}
	}
	return owners
}

func (b *Standard) RobberHex() engine.HexID { return b.robber }

func (b *Standard) MoveRobber(hex engine.HexID) { b.robber = hex }

// LongestRoadFor returns the length of the player's longest contiguous trail
// of road segments. Each segment is used at most once; revisiting a location
// is allowed.
func (b *Standard) LongestRoadFor(player uuid.UUID) int {
	adj := map[engine.Location][]engine.Location{}
	for e, owner := range b.roads {
		if owner != player {
			continue
		}
		adj[e.lo] = append(adj[e.lo], e.hi)
		adj[e.hi] = append(adj[e.hi], e.lo)
	}

	used := map[edge]bool{}
	var walk func(at engine.Location) int
	walk = func(at engine.Location) int {
		best := 0
		for _, next := range adj[at] {
			key := edgeKey(at, next)
			if used[key] {
				continue
			}
			used[key] = true
			if l := 1 + walk(next); l > best {
				best = l
			}
			used[key] = false
		}
		return best
	}

	best := 0
	for start := range adj {
		if l := walk(start); l > best {
			best = l
		}
	}
	return best
}
