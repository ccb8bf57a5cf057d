package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.StateBackend)
	assert.Equal(t, 120*time.Second, cfg.CardTimer)
	assert.False(t, cfg.WatchDataDir)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, filepath.Join("data", StateFile), cfg.StatePath())
	assert.Equal(t, filepath.Join("data", LogFile), cfg.LogPath())
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("DATA_DIR", "/srv/hallrush")
	t.Setenv("STATE_BACKEND", " SQLite ")
	t.Setenv("WATCH_DATA_DIR", "true")
	t.Setenv("CARD_TIMER", "30s")
	t.Setenv("PUBSUB_TRACING_ENABLED", "true")
	t.Setenv("PUBSUB_TRACING_SERVICE_NAME", "hallrush-test")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, BackendSQLite, cfg.StateBackend)
	assert.True(t, cfg.WatchDataDir)
	assert.Equal(t, 30*time.Second, cfg.CardTimer)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "hallrush-test", cfg.Tracing.ServiceName)
	assert.Equal(t, filepath.Join("/srv/hallrush", DatabaseFile), cfg.DatabasePath())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "STATE_BACKEND", val: "redis"},
		{name: "non-positive timer", key: "CARD_TIMER", val: "0s"},
		{name: "malformed timer", key: "CARD_TIMER", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
