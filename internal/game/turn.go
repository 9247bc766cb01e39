package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

// turnActions is what the acting player may do during their turn; everyone
// else is permitted nothing beyond automatic actions and whatever the trade
// negotiation temporarily grants them.
var turnActions = []engine.ActionType{
	engine.ActionBuyDevelopmentCard,
	engine.ActionEndTurn,
	engine.ActionMakeDirectTradeOffer,
	engine.ActionPlaceCity,
	engine.ActionPlaceRoadSegment,
	engine.ActionPlaceSettlement,
	engine.ActionPlayKnightCard,
	engine.ActionPlayMonopolyCard,
	engine.ActionPlayYearOfPlentyCard,
	engine.ActionPlayRoadBuildingCard,
	engine.ActionTradeWithBank,
}

func (s *Session) permitTurnActions(id uuid.UUID) {
	s.permit(id, turnActions...)
	if s.trade != nil && len(s.trade.answers) > 0 {
		s.permitAlso(id, engine.ActionAcceptDirectTrade)
	}
}

// runMainLoop repeats turns until somebody wins or the session is cancelled.
func (s *Session) runMainLoop(ctx context.Context) bool {
	for s.winner == uuid.Nil {
		if len(s.players) == 0 {
			return true
		}
		if s.current >= len(s.players) {
			s.current = 0
		}
		p := s.players[s.current]
		s.acting = p.ID
		s.currentQuit = false
		s.turnToken = uuid.New()
		s.boughtThisTurn = map[engine.DevelopmentCardType]int{}
		s.playedCardThisTurn = false
		s.trade = nil
		s.resetTurnTimer()

		d1, d2 := s.rng.RollTwoDice()
		if d1+d2 == 7 {
			if !s.runDiscardPhase(ctx) {
				return false
			}
			if s.winner != uuid.Nil {
				break
			}
			if _, alive := s.byID[p.ID]; !alive {
				continue
			}
			s.announceTurn(p, d1, d2, nil)
			if !s.awaitRobberPlacement(ctx, p) {
				return false
			}
			if s.winner != uuid.Nil {
				break
			}
			if _, alive := s.byID[p.ID]; !alive {
				continue
			}
		} else {
			collected := s.board.ResourcesForRoll(d1 + d2)
			for id, grant := range collected {
				if owner, alive := s.byID[id]; alive {
					owner.Receive(grant)
				}
			}
			s.announceTurn(p, d1, d2, collected)
		}

		if !s.runTurn(ctx, p) {
			return false
		}
	}
	return true
}

// announceTurn broadcasts the combined start-turn event. Only the acting
// player's copy carries the turn token.
func (s *Session) announceTurn(p *engine.Player, d1, d2 int, collected map[uuid.UUID]engine.ResourceClutch) {
	ev := engine.StartTurnEvent{PlayerID: p.ID, Dice1: d1, Dice2: d2, Collected: collected}
	s.sendToAllExcept(ev, p.ID)
	ev.Token = s.turnToken
	s.sendTo(p.ID, ev)
}

// runTurn processes the acting player's actions until they end their turn,
// quit, forfeit, or win.
func (s *Session) runTurn(ctx context.Context, p *engine.Player) bool {
	s.permitTurnActions(p.ID)
	for {
		if s.winner != uuid.Nil || s.currentQuit {
			return true
		}
		if _, alive := s.byID[p.ID]; !alive {
			return true
		}
		a, outcome := s.nextAction(ctx)
		switch outcome {
		case waitCancelled:
			return false
		case waitTimedOut:
			s.forfeit(p.ID)
			return true
		}
		if s.handleAutomatic(a) {
			continue
		}
		if !s.validate(a) {
			continue
		}

		switch act := a.(type) {
		case engine.EndTurnAction:
			s.endTurn()
			return true
		case engine.PlaceRoadSegmentAction:
			s.handlePlaceRoad(p, act)
		case engine.PlaceSettlementAction:
			s.handlePlaceSettlement(p, act)
		case engine.PlaceCityAction:
			s.handlePlaceCity(p, act)
		case engine.BuyDevelopmentCardAction:
			s.handleBuyDevCard(p)
		case engine.PlayKnightCardAction:
			if !s.handlePlayKnight(ctx, p, act) {
				return false
			}
		case engine.PlayMonopolyCardAction:
			s.handlePlayMonopoly(p, act)
		case engine.PlayYearOfPlentyCardAction:
			s.handlePlayYearOfPlenty(p, act)
		case engine.PlayRoadBuildingCardAction:
			s.handlePlayRoadBuilding(p, act)
		case engine.TradeWithBankAction:
			s.handleBankTrade(p, act)
		case engine.MakeDirectTradeOfferAction:
			s.handleMakeOffer(p, act)
		case engine.AnswerDirectTradeOfferAction:
			s.handleTradeAnswer(act)
		case engine.AcceptDirectTradeAction:
			s.handleTradeAccept(p, act)
		}
		s.resetTurnTimer()
	}
}

// endTurn advances to the next surviving player and resets the per-turn
// trackers; the next iteration of the main loop rolls for them.
func (s *Session) endTurn() {
	s.clearAllPermitted()
	s.trade = nil
	if len(s.players) > 0 {
		s.current = (s.current + 1) % len(s.players)
	}
}

// runDiscardPhase makes every player holding more than seven cards discard
// half, looping until all over-limit players have complied.
func (s *Session) runDiscardPhase(ctx context.Context) bool {
	owing := map[uuid.UUID]int{}
	for _, p := range s.players {
		if total := p.Resources.Total(); total > 7 {
			owing[p.ID] = total / 2
		}
	}
	if len(owing) == 0 {
		return true
	}

	s.clearAllPermitted()
	for id, count := range owing {
		s.permit(id, engine.ActionLoseResources)
		s.sendTo(id, engine.ChooseLostResourcesEvent{PlayerID: id, Count: count})
	}
	s.resetTurnTimer()

	prune := func() {
		for id := range owing {
			if _, alive := s.byID[id]; !alive {
				delete(owing, id)
			}
		}
	}

	for len(owing) > 0 {
		if s.winner != uuid.Nil {
			return true
		}
		a, outcome := s.nextAction(ctx)
		switch outcome {
		case waitCancelled:
			return false
		case waitTimedOut:
			late := make([]uuid.UUID, 0, len(owing))
			for id := range owing {
				late = append(late, id)
			}
			for _, id := range late {
				s.forfeit(id)
			}
			prune()
			continue
		}
		if s.handleAutomatic(a) {
			prune()
			continue
		}
		if !s.validate(a) {
			continue
		}
		act, isDiscard := a.(engine.LoseResourcesAction)
		if !isDiscard {
			continue
		}
		p := s.byID[act.PlayerID]
		need := owing[act.PlayerID]
		// A negative component would pass the total check while minting the
		// negated kind.
		if act.Resources.HasNegative() {
			s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeMalformedResources,
				"resource counts must not be negative"))
			s.sendTo(p.ID, engine.ChooseLostResourcesEvent{PlayerID: p.ID, Count: need})
			continue
		}
		if act.Resources.Total() != need || !p.Resources.Covers(act.Resources) {
			s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeIncorrectDiscardCount,
				"you must discard exactly %d resource cards you hold", need))
			s.sendTo(p.ID, engine.ChooseLostResourcesEvent{PlayerID: p.ID, Count: need})
			continue
		}
		p.Pay(act.Resources)
		delete(owing, p.ID)
		s.permit(p.ID)
		s.sendToAll(engine.ResourcesLostEvent{PlayerID: p.ID, Resources: act.Resources})
		s.resetTurnTimer()
	}
	s.clearAllPermitted()
	return true
}
