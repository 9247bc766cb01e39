package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/board"
	"github.com/jharte/settlers-backend/internal/engine"
)

// scriptedRolls hands out dice totals in order, repeating the last one. IntN
// always picks zero so shuffles and steals stay deterministic.
type scriptedRolls struct {
	mu     sync.Mutex
	totals []int
}

func (g *scriptedRolls) RollTwoDice() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 9
	if len(g.totals) > 0 {
		total = g.totals[0]
		if len(g.totals) > 1 {
			g.totals = g.totals[1:]
		}
	}
	d1 := total / 2
	if d1 > 6 {
		d1 = 6
	}
	if d1 < 1 {
		d1 = 1
	}
	return d1, total - d1
}

func (g *scriptedRolls) IntN(max int) int { return 0 }

type client struct {
	id  uuid.UUID
	out chan engine.GameEvent
}

// waitFor receives until an event of the wanted type arrives.
func waitFor[T engine.GameEvent](t *testing.T, ch <-chan engine.GameEvent) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				var zero T
				t.Fatalf("outbox closed while waiting for %T", zero)
			}
			if want, is := ev.(T); is {
				return want
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
		}
	}
}

// launch starts a session worker and joins one client per name.
func launch(t *testing.T, ctx context.Context, cfg Config, gen engine.NumberGenerator, recorder Recorder, names ...string) (*Session, []*client) {
	t.Helper()
	cfg.Capacity = len(names)
	s := New(zap.NewNop(), cfg, board.NewStandard(), gen, recorder)
	go s.Run(ctx)

	clients := make([]*client, 0, len(names))
	for _, name := range names {
		out := make(chan engine.GameEvent, 256)
		id, err := s.Join(ctx, name, out)
		require.NoError(t, err)
		clients = append(clients, &client{id: id, out: out})
	}
	return s, clients
}

// placeSetup answers one setup prompt for the client.
func placeSetup(t *testing.T, s *Session, c *client, settlement, roadEnd engine.Location) {
	t.Helper()
	prompt := waitFor[engine.PlaceSetupInfrastructureEvent](t, c.out)
	require.Equal(t, c.id, prompt.PlayerID)
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base:       engine.Base{PlayerID: c.id, Token: prompt.Token},
		Settlement: settlement,
		RoadEnd:    roadEnd,
	})
	waitFor[engine.SetupInfrastructurePlacedEvent](t, c.out)
}

// driveTwoPlayerOpening walks a fixed two-player game through setup and
// confirmation. Snake order places alice, bob, bob, alice.
func driveTwoPlayerOpening(t *testing.T, s *Session, alice, bob *client) {
	t.Helper()
	placeSetup(t, s, alice, 12, 11)
	placeSetup(t, s, bob, 18, 17)
	placeSetup(t, s, bob, 35, 36)
	placeSetup(t, s, alice, 40, 39)

	for _, c := range []*client{alice, bob} {
		waitFor[engine.ConfirmGameStartEvent](t, c.out)
		s.Post(engine.ConfirmGameStartAction{Base: engine.Base{PlayerID: c.id}})
	}
}

func TestSessionLobbyAndSetupOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, cs := launch(t, ctx, Config{}, &scriptedRolls{}, nil, "alice", "bob", "carol", "dave")
	a, b, c, d := cs[0], cs[1], cs[2], cs[3]

	joined := waitFor[engine.GameJoinedEvent](t, a.out)
	assert.Equal(t, a.id, joined.PlayerID)
	assert.Equal(t, s.ID, joined.SessionID)
	assert.False(t, s.Accepting())

	order := waitFor[engine.PlayerOrderEvent](t, a.out)
	assert.Equal(t, []uuid.UUID{a.id, b.id, c.id, d.id}, order.PlayerIDs)

	// Snake order: forward pass, then the same players in reverse.
	placeSetup(t, s, a, 12, 11)
	placeSetup(t, s, b, 18, 17)
	placeSetup(t, s, c, 25, 24)
	placeSetup(t, s, d, 31, 30)
	placeSetup(t, s, d, 33, 34)
	placeSetup(t, s, c, 35, 36)
	placeSetup(t, s, b, 43, 42)
	placeSetup(t, s, a, 40, 39)

	// Starting resources come from the hexes around the second settlement.
	grant := waitFor[engine.StartingResourcesEvent](t, a.out)
	assert.Equal(t, a.id, grant.PlayerID)
	assert.Equal(t, engine.ResourceClutch{Brick: 1, Ore: 1, Wool: 1}, grant.Resources)

	for _, cl := range cs {
		waitFor[engine.ConfirmGameStartEvent](t, cl.out)
		s.Post(engine.ConfirmGameStartAction{Base: engine.Base{PlayerID: cl.id}})
	}

	first := waitFor[engine.StartTurnEvent](t, a.out)
	assert.Equal(t, a.id, first.PlayerID)
	assert.NotEqual(t, uuid.Nil, first.Token)
}

func TestSetupRejectsIllegalPlacements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, cs := launch(t, ctx, Config{}, &scriptedRolls{}, nil, "alice", "bob")
	a, b := cs[0], cs[1]

	placeSetup(t, s, a, 12, 11)

	prompt := waitFor[engine.PlaceSetupInfrastructureEvent](t, b.out)

	// A state poll during setup names the player whose placement is pending.
	s.Post(engine.RequestStateAction{Base: engine.Base{PlayerID: a.id}})
	snap := waitFor[engine.GameStateEvent](t, a.out)
	assert.Equal(t, b.id, snap.CurrentPlayer)

	// Occupied location.
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base: engine.Base{PlayerID: b.id, Token: prompt.Token}, Settlement: 12, RoadEnd: 13,
	})
	ev := waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeLocationOccupied, ev.Code)

	// Distance rule.
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base: engine.Base{PlayerID: b.id, Token: prompt.Token}, Settlement: 13, RoadEnd: 14,
	})
	ev = waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeTooCloseToSettlement, ev.Code)

	// Off the board entirely.
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base: engine.Base{PlayerID: b.id, Token: prompt.Token}, Settlement: 54, RoadEnd: 53,
	})
	ev = waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeLocationOutOfRange, ev.Code)
	assert.Equal(t, "location 54 is outside of board range (0 - 53)", ev.Message)

	// A stale token is rejected even for the right player.
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base: engine.Base{PlayerID: b.id, Token: uuid.New()}, Settlement: 18, RoadEnd: 17,
	})
	ev = waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeInvalidTurnToken, ev.Code)

	// And the legal placement still lands.
	s.Post(engine.PlaceSetupInfrastructureAction{
		Base: engine.Base{PlayerID: b.id, Token: prompt.Token}, Settlement: 18, RoadEnd: 17,
	})
	waitFor[engine.SetupInfrastructurePlacedEvent](t, b.out)
}

func TestFirstTurnBuildAndTurnExclusivity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, cs := launch(t, ctx, Config{}, &scriptedRolls{totals: []int{9}}, nil, "alice", "bob")
	a, b := cs[0], cs[1]
	driveTwoPlayerOpening(t, s, a, b)

	st := waitFor[engine.StartTurnEvent](t, a.out)
	require.Equal(t, a.id, st.PlayerID)
	assert.Equal(t, 9, st.Dice1+st.Dice2)
	require.NotEqual(t, uuid.Nil, st.Token)
	// Nine produces lumber at 12 and wool at 40, both alice's.
	assert.Equal(t, engine.ResourceClutch{Lumber: 1, Wool: 1}, st.Collected[a.id])

	theirs := waitFor[engine.StartTurnEvent](t, b.out)
	assert.Equal(t, uuid.Nil, theirs.Token, "only the acting player holds the token")

	// Bob cannot act out of turn.
	s.Post(engine.EndTurnAction{Base: engine.Base{PlayerID: b.id, Token: st.Token}})
	ev := waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeActionNotPermitted, ev.Code)

	// An off-board road segment reports the offending location.
	s.Post(engine.PlaceRoadSegmentAction{Base: engine.Base{PlayerID: a.id, Token: st.Token}, Start: 53, End: 54})
	ev = waitFor[engine.GameErrorEvent](t, a.out)
	assert.Equal(t, engine.CodeLocationOutOfRange, ev.Code)
	assert.Equal(t, "location 54 is outside of board range (0 - 53)", ev.Message)

	// A legal road costs a brick and a lumber.
	s.Post(engine.PlaceRoadSegmentAction{Base: engine.Base{PlayerID: a.id, Token: st.Token}, Start: 11, End: 10})
	placed := waitFor[engine.RoadSegmentPlacedEvent](t, b.out)
	assert.Equal(t, a.id, placed.PlayerID)

	s.Post(engine.RequestStateAction{Base: engine.Base{PlayerID: a.id}})
	snap := waitFor[engine.GameStateEvent](t, a.out)
	assert.Equal(t, a.id, snap.CurrentPlayer)
	for _, p := range snap.Players {
		if p.ID == a.id {
			assert.Equal(t, engine.ResourceClutch{Ore: 1, Wool: 2}, p.Resources)
		}
	}

	s.Post(engine.EndTurnAction{Base: engine.Base{PlayerID: a.id, Token: st.Token}})
	next := waitFor[engine.StartTurnEvent](t, b.out)
	assert.Equal(t, b.id, next.PlayerID)
	assert.NotEqual(t, uuid.Nil, next.Token)
}

func TestSevenForcesDiscardThenRobber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, cs := launch(t, ctx, Config{}, &scriptedRolls{totals: []int{9, 9, 9, 7}}, nil, "alice", "bob")
	a, b := cs[0], cs[1]
	driveTwoPlayerOpening(t, s, a, b)

	// Three nine-rolls leave alice with nine cards; bob stays at three.
	for turn := 0; turn < 3; turn++ {
		acting := a
		if turn%2 == 1 {
			acting = b
		}
		st := waitFor[engine.StartTurnEvent](t, acting.out)
		require.Equal(t, acting.id, st.PlayerID)
		waitFor[engine.StartTurnEvent](t, other(cs, acting).out)
		s.Post(engine.EndTurnAction{Base: engine.Base{PlayerID: acting.id, Token: st.Token}})
	}

	// Bob's seven: alice must discard half, rounded down.
	choose := waitFor[engine.ChooseLostResourcesEvent](t, a.out)
	assert.Equal(t, 4, choose.Count)

	// Wrong count is rejected and re-prompted.
	s.Post(engine.LoseResourcesAction{
		Base: engine.Base{PlayerID: a.id}, Resources: engine.ResourceClutch{Lumber: 1},
	})
	ev := waitFor[engine.GameErrorEvent](t, a.out)
	assert.Equal(t, engine.CodeIncorrectDiscardCount, ev.Code)
	waitFor[engine.ChooseLostResourcesEvent](t, a.out)

	s.Post(engine.LoseResourcesAction{
		Base: engine.Base{PlayerID: a.id}, Resources: engine.ResourceClutch{Lumber: 3, Wool: 1},
	})
	lost := waitFor[engine.ResourcesLostEvent](t, b.out)
	assert.Equal(t, a.id, lost.PlayerID)
	assert.Equal(t, 4, lost.Resources.Total())

	// The turn announcement follows the discards; bob now moves the robber.
	st := waitFor[engine.StartTurnEvent](t, b.out)
	require.Equal(t, b.id, st.PlayerID)
	assert.Equal(t, 7, st.Dice1+st.Dice2)

	s.Post(engine.PlaceRobberAction{Base: engine.Base{PlayerID: b.id, Token: st.Token}, Hex: 9})
	ev = waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeRobberHexUnchanged, ev.Code)

	s.Post(engine.PlaceRobberAction{Base: engine.Base{PlayerID: b.id, Token: st.Token}, Hex: 19})
	ev = waitFor[engine.GameErrorEvent](t, b.out)
	assert.Equal(t, engine.CodeRobberHexOutOfRange, ev.Code)

	s.Post(engine.PlaceRobberAction{Base: engine.Base{PlayerID: b.id, Token: st.Token}, Hex: 0})
	moved := waitFor[engine.RobberPlacedEvent](t, a.out)
	assert.Equal(t, engine.HexID(0), moved.Hex)

	s.Post(engine.RequestStateAction{Base: engine.Base{PlayerID: b.id}})
	snap := waitFor[engine.GameStateEvent](t, b.out)
	assert.Equal(t, engine.HexID(0), snap.RobberHex)
}

func other(cs []*client, c *client) *client {
	if cs[0] == c {
		return cs[1]
	}
	return cs[0]
}

func TestQuitLeavesSoleSurvivorWinning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &captureRecorder{results: make(chan Result, 1)}
	s, cs := launch(t, ctx, Config{}, &scriptedRolls{}, rec, "alice", "bob")
	a, b := cs[0], cs[1]
	driveTwoPlayerOpening(t, s, a, b)

	waitFor[engine.StartTurnEvent](t, a.out)
	s.Post(engine.QuitGameAction{Base: engine.Base{PlayerID: b.id}})

	quit := waitFor[engine.PlayerQuitEvent](t, a.out)
	assert.Equal(t, b.id, quit.PlayerID)
	win := waitFor[engine.GameWinEvent](t, a.out)
	assert.Equal(t, a.id, win.PlayerID)

	select {
	case res := <-rec.results:
		assert.Equal(t, a.id, res.WinnerID)
		assert.Equal(t, s.ID, res.SessionID)
	case <-time.After(2 * time.Second):
		t.Fatal("result was never recorded")
	}

	cancel()
	require.Eventually(t, func() bool { return s.Status() == StatusStopped },
		2*time.Second, 10*time.Millisecond)
}

func TestTurnTimeoutForfeitsThePlayer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, cs := launch(t, ctx, Config{TurnTimeout: 500 * time.Millisecond}, &scriptedRolls{}, nil, "alice", "bob")
	a, b := cs[0], cs[1]
	driveTwoPlayerOpening(t, s, a, b)

	waitFor[engine.StartTurnEvent](t, a.out)
	// Alice never acts.
	timeout := waitFor[engine.TurnTimeoutEvent](t, b.out)
	assert.Equal(t, a.id, timeout.PlayerID)
	quit := waitFor[engine.PlayerQuitEvent](t, b.out)
	assert.Equal(t, a.id, quit.PlayerID)
	win := waitFor[engine.GameWinEvent](t, b.out)
	assert.Equal(t, b.id, win.PlayerID)
}

func TestSessionStopsOnCancelDuringLobby(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := New(zap.NewNop(), Config{Capacity: 4}, board.NewStandard(), &scriptedRolls{}, nil)
	go s.Run(ctx)

	out := make(chan engine.GameEvent, 16)
	_, err := s.Join(ctx, "alice", out)
	require.NoError(t, err)

	cancel()
	require.Eventually(t, func() bool { return s.Status() == StatusStopped },
		2*time.Second, 10*time.Millisecond)

	// Late joins fail cleanly.
	_, err = s.Join(context.Background(), "bob", make(chan engine.GameEvent, 1))
	assert.ErrorIs(t, err, ErrSessionClosed)
}

type captureRecorder struct {
	results chan Result
}

func (r *captureRecorder) SaveResult(ctx context.Context, res Result) error {
	r.results <- res
	return nil
}
