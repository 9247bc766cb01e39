// Package hub matches waiting clients into game sessions and supervises
// session lifecycle. One hub per process; sessions share nothing but the hub
// registry and the results recorder.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/board"
	"github.com/jharte/settlers-backend/internal/engine"
	"github.com/jharte/settlers-backend/internal/game"
)

type Config struct {
	SessionCapacity int
	TurnTimeout     time.Duration
	// SweepInterval is the supervising loop's poll interval for reaping
	// stopped sessions.
	SweepInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.SessionCapacity <= 0 {
		c.SessionCapacity = 4
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 250 * time.Millisecond
	}
	return c
}

type Msg interface{ isHubMsg() }

// JoinGame asks the hub to match a client into a session. The hub replies
// asynchronously once the session's lobby admits the player.
type JoinGame struct {
	Name   string
	Outbox chan engine.GameEvent
	Reply  chan JoinResult
}

type JoinResult struct {
	PlayerID uuid.UUID
	Session  *game.Session
	Err      error
}

// ListSessions reports the live session registry.
type ListSessions struct {
	Reply chan []SessionInfo
}

type SessionInfo struct {
	ID        uuid.UUID   `json:"id"`
	Status    game.Status `json:"status"`
	Accepting bool        `json:"accepting"`
}

func (JoinGame) isHubMsg()     {}
func (ListSessions) isHubMsg() {}

type Hub struct {
	inbox    chan Msg
	cfg      Config
	log      *zap.Logger
	recorder game.Recorder

	sessions map[uuid.UUID]*game.Session
	// accepting is the session currently being filled; dispatched counts the
	// joins already routed to it.
	accepting  *game.Session
	dispatched int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
}

func NewHub(parent context.Context, log *zap.Logger, cfg Config, recorder game.Recorder) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan Msg, 64),
		cfg:      cfg.withDefaults(),
		log:      log.Named("hub"),
		recorder: recorder,
		sessions: map[uuid.UUID]*game.Session{},
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

// Shutdown stops accepting new matches and blocks until every live session
// reports Stopped, or the wait context expires.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.cancel()
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) loop() {
	sweep := time.NewTicker(h.cfg.SweepInterval)
	defer sweep.Stop()
	for {
		select {
		case <-h.ctx.Done():
			h.wg.Wait()
			close(h.done)
			return

		case <-sweep.C:
			h.reapStopped()

		case m := <-h.inbox:
			switch msg := m.(type) {
			case JoinGame:
				h.dispatchJoin(msg)
			case ListSessions:
				infos := make([]SessionInfo, 0, len(h.sessions))
				for id, s := range h.sessions {
					infos = append(infos, SessionInfo{ID: id, Status: s.Status(), Accepting: s.Accepting()})
				}
				msg.Reply <- infos
			}
		}
	}
}

// reapStopped drops terminated sessions and rediscovers an accepting session
// if a lobby reopened (a player quit while waiting, say).
func (h *Hub) reapStopped() {
	for id, s := range h.sessions {
		if s.Status() == game.StatusStopped {
			h.log.Info("reaping stopped session", zap.String("session_id", id.String()))
			delete(h.sessions, id)
			if h.accepting == s {
				h.accepting = nil
			}
		}
	}
	if h.accepting == nil || !h.accepting.Accepting() {
		h.accepting = nil
		h.dispatched = 0
		for _, s := range h.sessions {
			if s.Accepting() {
				h.accepting = s
				break
			}
		}
	}
}

func (h *Hub) dispatchJoin(msg JoinGame) {
	if h.ctx.Err() != nil {
		msg.Reply <- JoinResult{Err: game.ErrSessionClosed}
		return
	}
	if h.accepting == nil || !h.accepting.Accepting() || h.dispatched >= h.cfg.SessionCapacity {
		h.accepting = h.newSession()
		h.dispatched = 0
	}
	s := h.accepting
	h.dispatched++

	// The session's lobby phase consumes the join; don't stall the hub loop
	// behind it.
	go func() {
		playerID, err := s.Join(h.ctx, msg.Name, msg.Outbox)
		msg.Reply <- JoinResult{PlayerID: playerID, Session: s, Err: err}
	}()
}

func (h *Hub) newSession() *game.Session {
	s := game.New(h.log, game.Config{
		Capacity:    h.cfg.SessionCapacity,
		TurnTimeout: h.cfg.TurnTimeout,
	}, board.NewStandard(), engine.NewRandomGenerator(time.Now().UnixNano()), h.recorder)
	h.sessions[s.ID] = s
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		s.Run(h.ctx)
	}()
	h.log.Info("created session", zap.String("session_id", s.ID.String()))
	return s
}
