package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/engine"
)

// Delivery is push, fire and forget. A client whose outbox is full gets
// dropped rather than stalling the worker; redelivery is the transport's
// concern, not the state machine's.

func (s *Session) sendTo(id uuid.UUID, ev engine.GameEvent) {
	ch, connected := s.outboxes[id]
	if !connected {
		return
	}
	select {
	case ch <- ev:
	default:
		s.log.Warn("outbox full, dropping client", zap.String("player_id", id.String()))
		close(ch)
		delete(s.outboxes, id)
	}
}

func (s *Session) sendToAll(ev engine.GameEvent) {
	for id := range s.outboxes {
		s.sendTo(id, ev)
	}
}

func (s *Session) sendToAllExcept(ev engine.GameEvent, except ...uuid.UUID) {
	for id := range s.outboxes {
		skip := false
		for _, e := range except {
			if id == e {
				skip = true
				break
			}
		}
		if !skip {
			s.sendTo(id, ev)
		}
	}
}
