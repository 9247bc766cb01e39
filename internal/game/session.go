// Package game runs one authoritative game session per worker goroutine. The
// worker is the sole consumer of the session's action queue and the only
// thread that ever touches board or player state; every other goroutine just
// enqueues actions or drains already-constructed events.
package game

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/engine"
)

// Status is the session lifecycle state observable from other goroutines.
type Status int32

const (
	StatusStopped Status = iota
	StatusRunning
	StatusStopping
)

var (
	ErrSessionFull   = errors.New("session is not accepting players")
	ErrSessionClosed = errors.New("session has stopped")
)

// Config carries the per-session knobs.
type Config struct {
	// Capacity is the fixed player count that triggers launch.
	Capacity int
	// TurnTimeout bounds how long the session waits on a player before
	// forfeiting them. Zero disables the timer.
	TurnTimeout time.Duration
	// InboxSize bounds the action queue.
	InboxSize int
}

func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = 4
	}
	if c.InboxSize <= 0 {
		c.InboxSize = 64
	}
	return c
}

type joinRequest struct {
	name   string
	outbox chan engine.GameEvent
	reply  chan joinReply
}

type joinReply struct {
	playerID uuid.UUID
	err      error
}

// answer is one seller's counter-offer in a trade negotiation.
type answer struct {
	offered engine.ResourceClutch
	wanted  engine.ResourceClutch
}

// tradeNegotiation is the explicit Offered -> Answered -> Accepted/Declined
// sub-state for direct trading.
type tradeNegotiation struct {
	buyerID uuid.UUID
	offered engine.ResourceClutch
	wanted  engine.ResourceClutch
	answers map[uuid.UUID]answer
}

// Session owns one game: its board, players, card pile and state machine.
type Session struct {
	ID uuid.UUID

	log      *zap.Logger
	cfg      Config
	board    engine.Board
	rng      engine.NumberGenerator
	pile     *engine.DevelopmentCardPile
	recorder Recorder

	inbox chan engine.PlayerAction
	joins chan joinRequest
	done  chan struct{}

	status    atomic.Int32
	accepting atomic.Bool

	// Everything below is owned by the worker goroutine.
	players   []*engine.Player
	byID      map[uuid.UUID]*engine.Player
	outboxes  map[uuid.UUID]chan engine.GameEvent
	permitted map[uuid.UUID]map[engine.ActionType]bool

	current     int
	currentQuit bool

	// acting is the player a state snapshot should name as on turn. During
	// setup it follows the snake order, which current does not track.
	acting    uuid.UUID
	turnToken uuid.UUID
	turnTimer *time.Timer

	boughtThisTurn     map[engine.DevelopmentCardType]int
	playedCardThisTurn bool
	secondSettlement   map[uuid.UUID]engine.Location
	trade              *tradeNegotiation

	winner    uuid.UUID
	startedAt time.Time
}

// New builds a session. Run must be started on its own goroutine.
func New(log *zap.Logger, cfg Config, b engine.Board, rng engine.NumberGenerator, recorder Recorder) *Session {
	cfg = cfg.withDefaults()
	id := uuid.New()
	s := &Session{
		ID:               id,
		log:              log.Named("session").With(zap.String("session_id", id.String())),
		cfg:              cfg,
		board:            b,
		rng:              rng,
		pile:             engine.NewDevelopmentCardPile(rng),
		recorder:         recorder,
		inbox:            make(chan engine.PlayerAction, cfg.InboxSize),
		joins:            make(chan joinRequest),
		done:             make(chan struct{}),
		byID:             map[uuid.UUID]*engine.Player{},
		outboxes:         map[uuid.UUID]chan engine.GameEvent{},
		permitted:        map[uuid.UUID]map[engine.ActionType]bool{},
		boughtThisTurn:   map[engine.DevelopmentCardType]int{},
		secondSettlement: map[uuid.UUID]engine.Location{},
	}
	s.accepting.Store(true)
	return s
}

// Status is safe to call from any goroutine.
func (s *Session) Status() Status { return Status(s.status.Load()) }

// Accepting reports whether the session is still matching players in.
func (s *Session) Accepting() bool { return s.accepting.Load() }

// Join registers a player and their event outbox. Blocks until the lobby
// phase consumes the request or the session stops.
func (s *Session) Join(ctx context.Context, name string, outbox chan engine.GameEvent) (uuid.UUID, error) {
	req := joinRequest{name: name, outbox: outbox, reply: make(chan joinReply, 1)}
	select {
	case s.joins <- req:
	case <-s.done:
		return uuid.Nil, ErrSessionClosed
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
	select {
	case rep := <-req.reply:
		return rep.playerID, rep.err
	case <-s.done:
		return uuid.Nil, ErrSessionClosed
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// Post enqueues an action. Never blocks the caller; when the queue is full
// the action is dropped and logged, which only ever starves the client that
// is flooding us.
func (s *Session) Post(a engine.PlayerAction) {
	select {
	case s.inbox <- a:
	default:
		s.log.Warn("inbox full, dropping action",
			zap.String("action", string(a.ActionType())),
			zap.String("player_id", a.Initiator().String()))
	}
}

// Run drives the whole lifecycle. Returns when the game is torn down or the
// context is cancelled; either way the terminal status is Stopped.
func (s *Session) Run(ctx context.Context) {
	s.status.Store(int32(StatusRunning))
	s.log.Info("session started")
	defer func() {
		s.shutdown()
		s.status.Store(int32(StatusStopped))
		close(s.done)
		s.log.Info("session stopped")
	}()

	if !s.runLobby(ctx) {
		return
	}
	s.startedAt = time.Now()
	if s.winner == uuid.Nil && !s.runSetup(ctx) {
		return
	}
	if s.winner == uuid.Nil && !s.runConfirmation(ctx) {
		return
	}
	if s.winner == uuid.Nil && !s.runMainLoop(ctx) {
		return
	}
	s.runCaretaker(ctx)
}

// shutdown notifies whoever is still connected and closes every outbox so
// transport writers unwind.
func (s *Session) shutdown() {
	s.status.Store(int32(StatusStopping))
	s.accepting.Store(false)
	for id, ch := range s.outboxes {
		select {
		case ch <- engine.SessionEndedEvent{}:
		default:
		}
		close(ch)
		delete(s.outboxes, id)
	}
}

type waitOutcome int

const (
	gotAction waitOutcome = iota
	waitCancelled
	waitTimedOut
)

// nextAction parks until an action arrives, the turn timer fires, or the
// session is cancelled. This is the single suspension point of the worker.
func (s *Session) nextAction(ctx context.Context) (engine.PlayerAction, waitOutcome) {
	var timerC <-chan time.Time
	if s.turnTimer != nil {
		timerC = s.turnTimer.C
	}
	select {
	case a := <-s.inbox:
		return a, gotAction
	case <-timerC:
		return nil, waitTimedOut
	case <-ctx.Done():
		return nil, waitCancelled
	}
}

// resetTurnTimer restarts the turn clock. Called at every turn start and
// after every accepted mutation.
func (s *Session) resetTurnTimer() {
	if s.cfg.TurnTimeout <= 0 {
		return
	}
	if s.turnTimer == nil {
		s.turnTimer = time.NewTimer(s.cfg.TurnTimeout)
		return
	}
	if !s.turnTimer.Stop() {
		select {
		case <-s.turnTimer.C:
		default:
		}
	}
	s.turnTimer.Reset(s.cfg.TurnTimeout)
}

func (s *Session) stopTurnTimer() {
	if s.turnTimer == nil {
		return
	}
	if !s.turnTimer.Stop() {
		select {
		case <-s.turnTimer.C:
		default:
		}
	}
	s.turnTimer = nil
}

// handleAutomatic services the two action kinds that bypass turn-ownership
// validation. Returns true when the action was consumed here.
func (s *Session) handleAutomatic(a engine.PlayerAction) bool {
	switch act := a.(type) {
	case engine.RequestStateAction:
		s.sendState(act.PlayerID)
		return true
	case engine.QuitGameAction:
		s.handleQuit(act.PlayerID)
		return true
	}
	return false
}

// handleQuit removes a player from the roster. A sole survivor wins on the
// spot; a mid-turn quit hands the turn to the next player immediately.
func (s *Session) handleQuit(id uuid.UUID) {
	p, known := s.byID[id]
	if !known {
		// A residual connection may quit twice; just drop the outbox.
		if ch, okc := s.outboxes[id]; okc {
			close(ch)
			delete(s.outboxes, id)
		}
		return
	}

	idx := s.indexOf(id)
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	delete(s.byID, id)
	delete(s.permitted, id)
	if ch, okc := s.outboxes[id]; okc {
		close(ch)
		delete(s.outboxes, id)
	}
	s.log.Info("player quit", zap.String("player_id", id.String()), zap.String("name", p.Name))
	s.sendToAll(engine.PlayerQuitEvent{PlayerID: id})

	if len(s.players) == 1 && s.winner == uuid.Nil && !s.startedAt.IsZero() {
		s.declareWinner(s.players[0])
		return
	}

	if len(s.players) == 0 {
		return
	}
	switch {
	case idx < s.current:
		s.current--
	case idx == s.current:
		s.currentQuit = true
		if s.current >= len(s.players) {
			s.current = 0
		}
	}
}

func (s *Session) indexOf(id uuid.UUID) int {
	for i, p := range s.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// forfeit treats a timed-out player as having quit, after telling everyone.
func (s *Session) forfeit(id uuid.UUID) {
	s.log.Warn("turn timeout, forfeiting player", zap.String("player_id", id.String()))
	s.sendToAll(engine.TurnTimeoutEvent{PlayerID: id})
	s.handleQuit(id)
}

func (s *Session) declareWinner(p *engine.Player) {
	s.winner = p.ID
	s.clearAllPermitted()
	s.sendToAll(engine.GameWinEvent{PlayerID: p.ID, VictoryPoints: p.VictoryPoints()})
	s.log.Info("game won", zap.String("player_id", p.ID.String()), zap.Int("points", p.VictoryPoints()))
	s.recordResult(p)
}

// sendState answers a request-state action with a full snapshot. Served in
// every phase, including post-game.
func (s *Session) sendState(to uuid.UUID) {
	ev := engine.GameStateEvent{
		SessionID: s.ID,
		WinnerID:  s.winner,
		RobberHex: s.board.RobberHex(),
	}
	if s.winner == uuid.Nil && s.acting != uuid.Nil {
		if _, alive := s.byID[s.acting]; alive {
			ev.CurrentPlayer = s.acting
		}
	}
	for _, p := range s.players {
		held := 0
		for _, n := range p.HeldCards {
			held += n
		}
		ev.Players = append(ev.Players, engine.PlayerState{
			ID:             p.ID,
			Name:           p.Name,
			Resources:      p.Resources,
			HeldCards:      held,
			PlayedKnights:  p.PlayedKnights,
			VictoryPoints:  p.VictoryPoints(),
			HasLargestArmy: p.HasLargestArmy,
			HasLongestRoad: p.HasLongestRoad,
		})
	}
	s.sendTo(to, ev)
}

// runCaretaker keeps servicing request-state from residual connections after
// the game concluded, until cancellation or everyone is gone.
func (s *Session) runCaretaker(ctx context.Context) {
	s.stopTurnTimer()
	for len(s.outboxes) > 0 {
		a, outcome := s.nextAction(ctx)
		if outcome != gotAction {
			return
		}
		if s.handleAutomatic(a) {
			continue
		}
		id := a.Initiator()
		s.sendTo(id, engine.NotPermittedError(id, a.ActionType(), nil))
	}
}

func (s *Session) recordResult(winner *engine.Player) {
	if s.recorder == nil {
		return
	}
	res := Result{
		SessionID:  s.ID,
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		Points:     winner.VictoryPoints(),
		StartedAt:  s.startedAt,
		EndedAt:    time.Now(),
	}
	for _, p := range s.players {
		res.Standings = append(res.Standings, Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Points:   p.VictoryPoints(),
		})
	}
	// Fire and forget; the worker never blocks on storage.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.recorder.SaveResult(ctx, res); err != nil {
			s.log.Warn("failed to record game result", zap.Error(err))
		}
	}()
}
