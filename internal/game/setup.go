package game

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/engine"
)

// runLobby admits players until capacity is reached. Ids are assigned in
// arrival order, which also fixes the setup order.
func (s *Session) runLobby(ctx context.Context) bool {
	for len(s.players) < s.cfg.Capacity {
		select {
		case req := <-s.joins:
			p := engine.NewPlayer(uuid.New(), req.name)
			s.players = append(s.players, p)
			s.byID[p.ID] = p
			s.outboxes[p.ID] = req.outbox
			req.reply <- joinReply{playerID: p.ID}
			s.sendTo(p.ID, engine.GameJoinedEvent{PlayerID: p.ID, SessionID: s.ID})
			s.sendToAllExcept(engine.PlayerJoinedEvent{PlayerID: p.ID, Name: p.Name}, p.ID)
			s.log.Info("player joined", zap.String("player_id", p.ID.String()), zap.String("name", p.Name))
		case a := <-s.inbox:
			if s.handleAutomatic(a) {
				continue
			}
			id := a.Initiator()
			s.sendTo(id, engine.NotPermittedError(id, a.ActionType(), nil))
		case <-ctx.Done():
			return false
		}
	}
	s.accepting.Store(false)
	return true
}

// runSetup drives the two snake-ordered placement passes, then grants every
// surviving player the resources adjacent to their second settlement.
func (s *Session) runSetup(ctx context.Context) bool {
	order := make([]uuid.UUID, 0, len(s.players))
	for _, p := range s.players {
		order = append(order, p.ID)
	}
	s.sendToAll(engine.PlayerOrderEvent{PlayerIDs: order})

	snake := make([]uuid.UUID, 0, 2*len(order))
	snake = append(snake, order...)
	for i := len(order) - 1; i >= 0; i-- {
		snake = append(snake, order[i])
	}

	for turn, id := range snake {
		if s.winner != uuid.Nil {
			return true
		}
		p, alive := s.byID[id]
		if !alive {
			continue
		}
		secondPass := turn >= len(order)
		if !s.awaitSetupPlacement(ctx, p, secondPass) {
			return false
		}
	}
	if s.winner != uuid.Nil {
		return true
	}

	for _, p := range s.players {
		loc, placed := s.secondSettlement[p.ID]
		if !placed {
			continue
		}
		grant := s.board.ResourcesAt(loc)
		p.Receive(grant)
		s.sendToAll(engine.StartingResourcesEvent{PlayerID: p.ID, Resources: grant})
	}
	s.clearAllPermitted()
	return true
}

// awaitSetupPlacement blocks until one player's setup placement (or their
// quit or forfeit) is processed.
func (s *Session) awaitSetupPlacement(ctx context.Context, p *engine.Player, secondPass bool) bool {
	s.clearAllPermitted()
	s.acting = p.ID
	s.permit(p.ID, engine.ActionPlaceSetupInfrastructure)
	s.turnToken = uuid.New()
	s.resetTurnTimer()
	s.sendTo(p.ID, engine.PlaceSetupInfrastructureEvent{PlayerID: p.ID, Token: s.turnToken})

	for {
		a, outcome := s.nextAction(ctx)
		switch outcome {
		case waitCancelled:
			return false
		case waitTimedOut:
			s.forfeit(p.ID)
			return true
		}
		if s.handleAutomatic(a) {
			if s.winner != uuid.Nil {
				return true
			}
			if _, alive := s.byID[p.ID]; !alive {
				return true
			}
			continue
		}
		if !s.validate(a) {
			continue
		}
		act, isPlacement := a.(engine.PlaceSetupInfrastructureAction)
		if !isPlacement {
			continue
		}
		r := s.board.PlaceStartingInfrastructure(p.ID, act.Settlement, act.RoadEnd)
		if !r.OK() {
			s.sendTo(p.ID, s.placementError(p.ID, r, act.Settlement, act.RoadEnd))
			continue
		}
		p.RemainingSettlements--
		p.RemainingRoadSegments--
		if secondPass {
			s.secondSettlement[p.ID] = act.Settlement
		}
		s.sendToAll(engine.SetupInfrastructurePlacedEvent{
			PlayerID:   p.ID,
			Settlement: act.Settlement,
			RoadEnd:    act.RoadEnd,
		})
		return true
	}
}

// runConfirmation waits for every player to confirm or quit before the turn
// order is fixed and main play starts.
func (s *Session) runConfirmation(ctx context.Context) bool {
	// Nobody is on turn while confirmations come in.
	s.acting = uuid.Nil
	s.sendToAll(engine.ConfirmGameStartEvent{})
	confirmed := map[uuid.UUID]bool{}
	for _, p := range s.players {
		s.permit(p.ID, engine.ActionConfirmGameStart)
	}
	s.resetTurnTimer()

	pending := func() []uuid.UUID {
		var ids []uuid.UUID
		for _, p := range s.players {
			if !confirmed[p.ID] {
				ids = append(ids, p.ID)
			}
		}
		return ids
	}

	for len(pending()) > 0 {
		if s.winner != uuid.Nil || len(s.players) == 0 {
			break
		}
		a, outcome := s.nextAction(ctx)
		switch outcome {
		case waitCancelled:
			return false
		case waitTimedOut:
			for _, id := range pending() {
				s.forfeit(id)
			}
			continue
		}
		if s.handleAutomatic(a) {
			continue
		}
		if !s.validate(a) {
			continue
		}
		if act, isConfirm := a.(engine.ConfirmGameStartAction); isConfirm {
			confirmed[act.PlayerID] = true
			s.permit(act.PlayerID)
			s.resetTurnTimer()
		}
	}
	s.clearAllPermitted()
	s.current = 0
	return true
}
