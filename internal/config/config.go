// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// SessionCapacity is the number of players matched into one game.
	SessionCapacity int
	// TurnTimeout forfeits a player who sits on their turn this long.
	// Zero disables the timer.
	TurnTimeout time.Duration
	// SweepInterval is how often the hub reaps stopped sessions.
	SweepInterval time.Duration
	// DatabaseURL enables the Postgres results store when set.
	DatabaseURL string
	Debug       bool
}

// Load reads the environment, after merging in a .env file if one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Debug:       os.Getenv("DEBUG") != "",
	}

	var err error
	if cfg.SessionCapacity, err = getint("SESSION_CAPACITY", 4); err != nil {
		return Config{}, err
	}
	if cfg.SessionCapacity < 2 {
		return Config{}, fmt.Errorf("SESSION_CAPACITY must be at least 2, got %d", cfg.SessionCapacity)
	}
	if cfg.TurnTimeout, err = getduration("TURN_TIMEOUT", 2*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = getduration("SWEEP_INTERVAL", 250*time.Millisecond); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getduration(k string, d time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	t, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return t, nil
}
