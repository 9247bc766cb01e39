// Package store persists completed-game results to Postgres.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jharte/settlers-backend/internal/game"
)

// GameRecord is one row per concluded game. Standings are denormalized to a
// JSON column; nothing queries them per player.
type GameRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	WinnerID   uuid.UUID `gorm:"type:uuid;index"`
	WinnerName string
	Points     int
	StartedAt  time.Time
	EndedAt    time.Time
	Standings  string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (GameRecord) TableName() string { return "game_records" }

// Store implements game.Recorder on top of gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the results table.
func Open(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&GameRecord{}); err != nil {
		return nil, fmt.Errorf("migrating results schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveResult(ctx context.Context, r game.Result) error {
	standings, err := json.Marshal(r.Standings)
	if err != nil {
		return fmt.Errorf("encoding standings: %w", err)
	}
	rec := GameRecord{
		ID:         r.SessionID,
		WinnerID:   r.WinnerID,
		WinnerName: r.WinnerName,
		Points:     r.Points,
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
		Standings:  string(standings),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("saving game record: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
