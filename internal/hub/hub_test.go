package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jharte/settlers-backend/internal/engine"
	"github.com/jharte/settlers-backend/internal/game"
)

func join(t *testing.T, h *Hub, name string) JoinResult {
	t.Helper()
	reply := make(chan JoinResult, 1)
	h.Inbox() <- JoinGame{Name: name, Outbox: make(chan engine.GameEvent, 64), Reply: reply}
	select {
	case res := <-reply:
		require.NoError(t, res.Err)
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out joining")
		return JoinResult{}
	}
}

func TestHub_MatchesIntoSameSessionUntilFull(t *testing.T) {
	h := NewHub(context.Background(), zap.NewNop(), Config{SessionCapacity: 2}, nil)
	defer func() { _ = h.Shutdown(context.Background()) }()

	r1 := join(t, h, "alice")
	r2 := join(t, h, "bob")
	assert.Same(t, r1.Session, r2.Session)
	assert.NotEqual(t, r1.PlayerID, r2.PlayerID)

	// A full lobby forces a fresh session for the next player.
	r3 := join(t, h, "carol")
	assert.NotSame(t, r1.Session, r3.Session)
}

func TestHub_ListSessions(t *testing.T) {
	h := NewHub(context.Background(), zap.NewNop(), Config{SessionCapacity: 2}, nil)
	defer func() { _ = h.Shutdown(context.Background()) }()

	join(t, h, "alice")

	reply := make(chan []SessionInfo, 1)
	h.Inbox() <- ListSessions{Reply: reply}
	select {
	case infos := <-reply:
		require.Len(t, infos, 1)
		assert.True(t, infos[0].Accepting)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out listing sessions")
	}
}

func TestHub_ShutdownStopsSessions(t *testing.T) {
	h := NewHub(context.Background(), zap.NewNop(), Config{SessionCapacity: 2}, nil)

	res := join(t, h, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.Shutdown(ctx))
	assert.Eventually(t, func() bool { return res.Session.Status() == game.StatusStopped },
		time.Second, 10*time.Millisecond)

	// Joins after shutdown fail.
	reply := make(chan JoinResult, 1)
	select {
	case h.Inbox() <- JoinGame{Name: "bob", Outbox: make(chan engine.GameEvent, 1), Reply: reply}:
		// The loop has exited; nothing consumes the message, which is fine.
	default:
	}
}
