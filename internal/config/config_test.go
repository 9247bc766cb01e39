package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 4, cfg.SessionCapacity)
	assert.Equal(t, 2*time.Minute, cfg.TurnTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SESSION_CAPACITY", "3")
	t.Setenv("TURN_TIMEOUT", "45s")
	t.Setenv("DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 3, cfg.SessionCapacity)
	assert.Equal(t, 45*time.Second, cfg.TurnTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_CAPACITY", "one")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_CAPACITY", "1")
	_, err = Load()
	assert.Error(t, err, "a solo game cannot be played")

	t.Setenv("SESSION_CAPACITY", "4")
	t.Setenv("TURN_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}
