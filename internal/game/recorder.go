package game

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Standing is one player's final line in a completed game.
type Standing struct {
	PlayerID uuid.UUID
	Name     string
	Points   int
}

// Result is the record of a concluded game.
type Result struct {
	SessionID  uuid.UUID
	WinnerID   uuid.UUID
	WinnerName string
	Points     int
	StartedAt  time.Time
	EndedAt    time.Time
	Standings  []Standing
}

// Recorder persists completed-game results. A nil Recorder disables
// recording; delivery failures never affect the session.
type Recorder interface {
	SaveResult(ctx context.Context, r Result) error
}
