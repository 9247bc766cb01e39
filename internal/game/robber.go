package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

// awaitRobberPlacement blocks until the acting player relocates the robber
// after a natural seven. Knight plays skip this wait; the knight action
// already carries the destination hex.
func (s *Session) awaitRobberPlacement(ctx context.Context, p *engine.Player) bool {
	s.clearAllPermitted()
	s.permit(p.ID, engine.ActionPlaceRobber)
	for {
		if s.winner != uuid.Nil {
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
		act, isPlace := a.(engine.PlaceRobberAction)
		if !isPlace {
			continue
		}
		if act.Hex < 0 || act.Hex > engine.LastHex {
			s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeRobberHexOutOfRange,
				"hex %d is outside of board range (0 - %d)", act.Hex, engine.LastHex))
			continue
		}
		if act.Hex == s.board.RobberHex() {
			s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeRobberHexUnchanged,
				"robber must move to a different hex"))
			continue
		}
		s.board.MoveRobber(act.Hex)
		s.sendToAll(engine.RobberPlacedEvent{PlayerID: p.ID, Hex: act.Hex})
		return s.resolveRobbery(ctx, p, act.Hex)
	}
}

// resolveRobbery steals one resource on the robber's new hex. A single
// opponent is robbed at random immediately; multiple opponents make the thief
// pick a victim first.
func (s *Session) resolveRobbery(ctx context.Context, thief *engine.Player, hex engine.HexID) bool {
	candidates := map[uuid.UUID]int{}
	for _, id := range s.board.PlayersOnHex(hex) {
		if id == thief.ID {
			continue
		}
		victim, alive := s.byID[id]
		if !alive || victim.Resources.Total() == 0 {
			continue
		}
		candidates[id] = victim.Resources.Total()
	}

	switch len(candidates) {
	case 0:
		return true
	case 1:
		for id := range candidates {
			s.steal(thief, s.byID[id])
		}
		return true
	}

	s.sendTo(thief.ID, engine.RobbingChoicesEvent{PlayerID: thief.ID, Choices: candidates})
	s.permit(thief.ID, engine.ActionSelectResourceFromPlayer)
	for {
		if s.winner != uuid.Nil {
			return true
		}
		if _, alive := s.byID[thief.ID]; !alive {
			return true
		}
		a, outcome := s.nextAction(ctx)
		switch outcome {
		case waitCancelled:
			return false
		case waitTimedOut:
			s.forfeit(thief.ID)
			return true
		}
		if s.handleAutomatic(a) {
			continue
		}
		if !s.validate(a) {
			continue
		}
		act, isSelect := a.(engine.SelectResourceFromPlayerAction)
		if !isSelect {
			continue
		}
		if _, candidate := candidates[act.Victim]; !candidate {
			s.sendTo(thief.ID, engine.NewGameError(thief.ID, engine.CodeInvalidRobbingChoice,
				"player is not a robbery candidate on this hex"))
			continue
		}
		victim, alive := s.byID[act.Victim]
		if !alive {
			delete(candidates, act.Victim)
			if len(candidates) == 0 {
				return true
			}
			s.sendTo(thief.ID, engine.RobbingChoicesEvent{PlayerID: thief.ID, Choices: candidates})
			continue
		}
		s.steal(thief, victim)
		return true
	}
}

// steal moves one uniformly chosen card from victim to thief. The theft is
// reported in detail to both parties and as a bare notice to everyone else.
func (s *Session) steal(thief, victim *engine.Player) {
	total := victim.Resources.Total()
	if total == 0 {
		return
	}
	kind, _ := victim.Resources.KindAt(s.rng.IntN(total))
	victim.Pay(engine.OfKind(kind, 1))
	thief.Receive(engine.OfKind(kind, 1))

	stolen := engine.ResourceStolenEvent{ThiefID: thief.ID, VictimID: victim.ID, Resource: kind}
	s.sendTo(thief.ID, stolen)
	s.sendTo(victim.ID, stolen)
	s.sendToAllExcept(engine.ResourceTheftNoticeEvent{ThiefID: thief.ID, VictimID: victim.ID},
		thief.ID, victim.ID)
}
