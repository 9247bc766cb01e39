package game

import (
	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

// tokenScoped marks the action types that must present the turn token
// currently valid for the acting turn. Out-of-turn responses (discards, trade
// answers, confirmations) are gated by the permitted set alone.
var tokenScoped = map[engine.ActionType]bool{
	engine.ActionPlaceSetupInfrastructure: true,
	engine.ActionPlaceRoadSegment:         true,
	engine.ActionPlaceSettlement:          true,
	engine.ActionPlaceCity:                true,
	engine.ActionBuyDevelopmentCard:       true,
	engine.ActionPlayKnightCard:           true,
	engine.ActionPlayMonopolyCard:         true,
	engine.ActionPlayYearOfPlentyCard:     true,
	engine.ActionPlayRoadBuildingCard:     true,
	engine.ActionTradeWithBank:            true,
	engine.ActionMakeDirectTradeOffer:     true,
	engine.ActionAcceptDirectTrade:        true,
	engine.ActionPlaceRobber:              true,
	engine.ActionSelectResourceFromPlayer: true,
	engine.ActionEndTurn:                  true,
}

// permit replaces a player's permitted set. No types means nothing permitted.
func (s *Session) permit(id uuid.UUID, types ...engine.ActionType) {
	if len(types) == 0 {
		s.permitted[id] = nil
		return
	}
	set := make(map[engine.ActionType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	s.permitted[id] = set
}

// permitAlso extends a player's current set.
func (s *Session) permitAlso(id uuid.UUID, types ...engine.ActionType) {
	set := s.permitted[id]
	if set == nil {
		set = map[engine.ActionType]bool{}
		s.permitted[id] = set
	}
	for _, t := range types {
		set[t] = true
	}
}

func (s *Session) revoke(id uuid.UUID, types ...engine.ActionType) {
	set := s.permitted[id]
	for _, t := range types {
		delete(set, t)
	}
}

func (s *Session) clearAllPermitted() {
	for id := range s.permitted {
		s.permitted[id] = nil
	}
}

// validate gates one dequeued action against the acting player's permitted
// set and, where applicable, the turn token. A rejection emits a structured
// error to the offender and the game simply keeps polling; validation never
// blocks or corrupts state.
func (s *Session) validate(a engine.PlayerAction) bool {
	t := a.ActionType()
	if t.IsAutomatic() {
		return true
	}
	id := a.Initiator()
	if _, known := s.byID[id]; !known {
		// Action from a player already removed; nothing to reject to.
		return false
	}
	allowed := s.permitted[id]
	if !allowed[t] {
		expected := make([]engine.ActionType, 0, len(allowed))
		for at := range allowed {
			expected = append(expected, at)
		}
		s.sendTo(id, engine.NotPermittedError(id, t, expected))
		return false
	}
	if tokenScoped[t] && a.TurnToken() != s.turnToken {
		s.sendTo(id, engine.NewGameError(id, engine.CodeInvalidTurnToken,
			"stale or missing turn token for action %q", string(t)))
		return false
	}
	return true
}
