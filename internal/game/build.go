package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

// placementError translates a board status into the structured error event
// for the offending player.
func (s *Session) placementError(player uuid.UUID, r engine.PlacementResult, a, b engine.Location) engine.GameErrorEvent {
	switch r.Status {
	case engine.PlacementOutOfRange:
		loc := a
		if a >= 0 && a <= engine.LastLocation {
			loc = b
		}
		return engine.OutOfRangeError(player, loc)
	case engine.PlacementOccupied:
		return engine.NewGameError(player, engine.CodeLocationOccupied,
			"location %d is already occupied", a)
	case engine.PlacementTooClose:
		return engine.NewGameError(player, engine.CodeTooCloseToSettlement,
			"location %d is too close to an existing settlement", a)
	case engine.PlacementRoadOccupied:
		return engine.NewGameError(player, engine.CodeLocationOccupied,
			"road between %d and %d is already occupied", a, b)
	case engine.PlacementNoDirectConnection:
		return engine.NewGameError(player, engine.CodeRoadNotConnected,
			"no direct connection between locations %d and %d", a, b)
	case engine.PlacementRoadNotConnected:
		return engine.NewGameError(player, engine.CodeRoadNotConnected,
			"placement at %d does not connect to your network", a)
	case engine.PlacementNotSettlement:
		return engine.NewGameError(player, engine.CodeNotOwnedSettlement,
			"location %d has no settlement to upgrade", a)
	case engine.PlacementNotOwned:
		return engine.NewGameError(player, engine.CodeNotOwnedSettlement,
			"settlement at %d belongs to another player", a)
	}
	return engine.NewGameError(player, engine.CodeLocationOccupied, "placement at %d failed", a)
}

func (s *Session) handlePlaceRoad(p *engine.Player, act engine.PlaceRoadSegmentAction) {
	if p.RemainingRoadSegments < 1 {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNoPiecesRemaining, "no road segments left"))
		return
	}
	if !p.CanAfford(engine.RoadCost) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"not enough resources for a road segment"))
		return
	}
	r := s.board.PlaceRoadSegment(p.ID, act.Start, act.End)
	if !r.OK() {
		s.sendTo(p.ID, s.placementError(p.ID, r, act.Start, act.End))
		return
	}
	p.Pay(engine.RoadCost)
	p.RemainingRoadSegments--
	s.sendToAll(engine.RoadSegmentPlacedEvent{PlayerID: p.ID, Start: act.Start, End: act.End})
	s.recomputeLongestRoad(p)
}

func (s *Session) handlePlaceSettlement(p *engine.Player, act engine.PlaceSettlementAction) {
	if p.RemainingSettlements < 1 {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNoPiecesRemaining, "no settlements left"))
		return
	}
	if !p.CanAfford(engine.SettlementCost) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"not enough resources for a settlement"))
		return
	}
	r := s.board.PlaceSettlement(p.ID, act.Location)
	if !r.OK() {
		s.sendTo(p.ID, s.placementError(p.ID, r, act.Location, act.Location))
		return
	}
	p.Pay(engine.SettlementCost)
	p.RemainingSettlements--
	s.sendToAll(engine.SettlementPlacedEvent{PlayerID: p.ID, Location: act.Location})
	s.checkVictory(p)
}

func (s *Session) handlePlaceCity(p *engine.Player, act engine.PlaceCityAction) {
	if p.RemainingCities < 1 {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNoPiecesRemaining, "no cities left"))
		return
	}
	if !p.CanAfford(engine.CityCost) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"not enough resources for a city"))
		return
	}
	r := s.board.PlaceCity(p.ID, act.Location)
	if !r.OK() {
		s.sendTo(p.ID, s.placementError(p.ID, r, act.Location, act.Location))
		return
	}
	p.Pay(engine.CityCost)
	p.RemainingCities--
	// The settlement piece under the city returns to stock.
	p.RemainingSettlements++
	s.sendToAll(engine.CityPlacedEvent{PlayerID: p.ID, Location: act.Location})
	s.checkVictory(p)
}

func (s *Session) handleBuyDevCard(p *engine.Player) {
	if !s.pile.HasCards() {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNoDevelopmentCards,
			"no development cards left to buy"))
		return
	}
	if !p.CanAfford(engine.DevCardCost) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"not enough resources for a development card"))
		return
	}
	card, _ := s.pile.TakeCard()
	p.Pay(engine.DevCardCost)
	p.HeldCards[card]++
	s.boughtThisTurn[card]++
	s.sendTo(p.ID, engine.DevelopmentCardBoughtEvent{PlayerID: p.ID, Card: card})
	s.sendToAllExcept(engine.DevelopmentCardBoughtEvent{PlayerID: p.ID}, p.ID)
	s.checkVictory(p)
}

// canPlayCard enforces the one-card-per-turn rule and keeps cards bought this
// turn out of play until the next one.
func (s *Session) canPlayCard(p *engine.Player, card engine.DevelopmentCardType) bool {
	if s.playedCardThisTurn {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeCardNotPlayable,
			"already played a development card this turn"))
		return false
	}
	if p.HeldCards[card]-s.boughtThisTurn[card] < 1 {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeCardNotPlayable,
			"no playable %s card (cards bought this turn cannot be played)", string(card)))
		return false
	}
	return true
}

func (s *Session) consumeCard(p *engine.Player, card engine.DevelopmentCardType) {
	p.HeldCards[card]--
	if p.HeldCards[card] == 0 {
		delete(p.HeldCards, card)
	}
	s.playedCardThisTurn = true
}

func (s *Session) handlePlayKnight(ctx context.Context, p *engine.Player, act engine.PlayKnightCardAction) bool {
	if !s.canPlayCard(p, engine.KnightCard) {
		return true
	}
	if act.NewRobberHex < 0 || act.NewRobberHex > engine.LastHex {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeRobberHexOutOfRange,
			"hex %d is outside of board range (0 - %d)", act.NewRobberHex, engine.LastHex))
		return true
	}
	if act.NewRobberHex == s.board.RobberHex() {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeRobberHexUnchanged,
			"robber must move to a different hex"))
		return true
	}
	s.consumeCard(p, engine.KnightCard)
	p.PlayedKnights++
	s.board.MoveRobber(act.NewRobberHex)
	s.sendToAll(engine.KnightCardPlayedEvent{PlayerID: p.ID, Hex: act.NewRobberHex})
	if !s.resolveRobbery(ctx, p, act.NewRobberHex) {
		return false
	}
	s.permitTurnActions(p.ID)
	s.recomputeLargestArmy(p)
	return true
}

func (s *Session) handlePlayMonopoly(p *engine.Player, act engine.PlayMonopolyCardAction) {
	if !s.canPlayCard(p, engine.MonopolyCard) {
		return
	}
	s.consumeCard(p, engine.MonopolyCard)
	taken := map[uuid.UUID]int{}
	for _, other := range s.players {
		if other.ID == p.ID {
			continue
		}
		n := other.Resources.Count(act.Resource)
		if n == 0 {
			continue
		}
		other.Pay(engine.OfKind(act.Resource, n))
		p.Receive(engine.OfKind(act.Resource, n))
		taken[other.ID] = n
	}
	s.sendToAll(engine.MonopolyCardPlayedEvent{PlayerID: p.ID, Resource: act.Resource, Taken: taken})
}

func (s *Session) handlePlayYearOfPlenty(p *engine.Player, act engine.PlayYearOfPlentyCardAction) {
	if !s.canPlayCard(p, engine.YearOfPlentyCard) {
		return
	}
	s.consumeCard(p, engine.YearOfPlentyCard)
	p.Receive(engine.OfKind(act.First, 1).Add(engine.OfKind(act.Second, 1)))
	s.sendToAll(engine.YearOfPlentyCardPlayedEvent{PlayerID: p.ID, First: act.First, Second: act.Second})
}

func (s *Session) handlePlayRoadBuilding(p *engine.Player, act engine.PlayRoadBuildingCardAction) {
	if !s.canPlayCard(p, engine.RoadBuildingCard) {
		return
	}
	if p.RemainingRoadSegments < 2 {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNoPiecesRemaining,
			"road building needs two road segments in stock"))
		return
	}
	r := s.board.PlaceTwoRoadSegments(p.ID, act.FirstStart, act.FirstEnd, act.SecondStart, act.SecondEnd)
	if !r.OK() {
		s.sendTo(p.ID, s.placementError(p.ID, r, act.FirstStart, act.FirstEnd))
		return
	}
	s.consumeCard(p, engine.RoadBuildingCard)
	p.RemainingRoadSegments -= 2
	s.sendToAll(engine.RoadBuildingCardPlayedEvent{
		PlayerID:    p.ID,
		FirstStart:  act.FirstStart,
		FirstEnd:    act.FirstEnd,
		SecondStart: act.SecondStart,
		SecondEnd:   act.SecondEnd,
	})
	s.recomputeLongestRoad(p)
}

// recomputeLongestRoad transfers the title only on a strictly greater length
// by a different player; ties never move it.
func (s *Session) recomputeLongestRoad(p *engine.Player) {
	length := s.board.LongestRoadFor(p.ID)
	if length < 5 {
		return
	}
	holder := s.titleHolder(func(pl *engine.Player) bool { return pl.HasLongestRoad })
	if holder != nil && (holder.ID == p.ID || s.board.LongestRoadFor(holder.ID) >= length) {
		return
	}
	var previous uuid.UUID
	if holder != nil {
		holder.HasLongestRoad = false
		previous = holder.ID
	}
	p.HasLongestRoad = true
	s.sendToAll(engine.LongestRoadBuiltEvent{PreviousPlayerID: previous, NewPlayerID: p.ID, Length: length})
	s.checkVictory(p)
}

// recomputeLargestArmy mirrors the longest-road transfer rule for knights.
func (s *Session) recomputeLargestArmy(p *engine.Player) {
	if p.PlayedKnights < 3 {
		return
	}
	holder := s.titleHolder(func(pl *engine.Player) bool { return pl.HasLargestArmy })
	if holder != nil && (holder.ID == p.ID || holder.PlayedKnights >= p.PlayedKnights) {
		return
	}
	var previous uuid.UUID
	if holder != nil {
		holder.HasLargestArmy = false
		previous = holder.ID
	}
	p.HasLargestArmy = true
	s.sendToAll(engine.LargestArmyChangedEvent{PreviousPlayerID: previous, NewPlayerID: p.ID, Knights: p.PlayedKnights})
	s.checkVictory(p)
}

func (s *Session) titleHolder(holds func(*engine.Player) bool) *engine.Player {
	for _, pl := range s.players {
		if holds(pl) {
			return pl
		}
	}
	return nil
}

// checkVictory is called immediately after every point-granting mutation.
func (s *Session) checkVictory(p *engine.Player) {
	if s.winner == uuid.Nil && p.VictoryPoints() >= engine.WinningPoints {
		s.declareWinner(p)
	}
}
