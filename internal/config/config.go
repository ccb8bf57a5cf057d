package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Data file names inside DataDir.
const (
	StateFile    = "game_state.json"
	LogFile      = "game_log.txt"
	DatabaseFile = "hallrush.db"
)

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string        `env:"SERVER_ADDR" envDefault:":8080"`
	DataDir       string        `env:"DATA_DIR" envDefault:"data"`
	StateBackend  string        `env:"STATE_BACKEND" envDefault:"file"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"hallrush-dev-secret"`
	WatchDataDir  bool          `env:"WATCH_DATA_DIR" envDefault:"false"`
	CardTimer     time.Duration `env:"CARD_TIMER" envDefault:"120s"`

	Tracing TracingConfig `envPrefix:"PUBSUB_TRACING_"`
}

// TracingConfig switches OpenTelemetry tracing of the event bus.
type TracingConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"hallrush"`
	ZipkinURL   string `env:"ZIPKIN_URL" envDefault:"http://localhost:9411/api/v2/spans"`
}

// New loads .env if present and then parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads configuration from environment variables only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.StateBackend = strings.ToLower(strings.TrimSpace(c.StateBackend))
	switch c.StateBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q (want %q or %q)", c.StateBackend, BackendFile, BackendSQLite)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.CardTimer <= 0 {
		return fmt.Errorf("CARD_TIMER must be positive, got %s", c.CardTimer)
	}
	return nil
}

// StatePath is the location of the JSON state file.
func (c *Config) StatePath() string { return filepath.Join(c.DataDir, StateFile) }

// LogPath is the location of the narration journal.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, LogFile) }

// DatabasePath is the location of the SQLite database.
func (c *Config) DatabasePath() string { return filepath.Join(c.DataDir, DatabaseFile) }
