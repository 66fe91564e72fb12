// Package config loads the tourney configuration: .tourney/config.json in the
// working directory, overlaid by TOURNEY_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// DefaultHomeCountry decides which teams are national when nothing is configured.
const DefaultHomeCountry = "Paraguay"

// Config represents the tourney configuration.
type Config struct {
	Version        string `json:"version"`
	TournamentName string `json:"tournament_name,omitempty"`
	HomeCountry    string `json:"home_country,omitempty" env:"TOURNEY_HOME_COUNTRY"`
	DBPath         string `json:"db_path,omitempty" env:"TOURNEY_DB_PATH"`
	StationID      string `json:"station_id,omitempty" env:"TOURNEY_STATION"`

	// Transaction retry policy; zero values fall back to the transactor defaults.
	TxMaxAttempts    int           `json:"tx_max_attempts,omitempty" env:"TOURNEY_TX_MAX_ATTEMPTS"`
	TxInitialBackoff time.Duration `json:"-" env:"TOURNEY_TX_INITIAL_BACKOFF"`

	// Tracing is environment-only.
	OTelEndpoint string `json:"-" env:"TOURNEY_OTEL_ENDPOINT"`
	OTelEnabled  bool   `json:"-" env:"TOURNEY_OTEL_ENABLED" envDefault:"true"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		HomeCountry: DefaultHomeCountry,
		OTelEnabled: true,
	}
}

// Path returns the config file location under dir.
func Path(dir string) string {
	return filepath.Join(dir, ".tourney", "config.json")
}

// LoadConfig reads .tourney/config.json from the specified directory.
// Returns an error wrapping fs.ErrNotExist when there is no config file.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	tourneyDir := filepath.Dir(Path(dir))
	if err := os.MkdirAll(tourneyDir, 0755); err != nil {
		return fmt.Errorf("failed to create .tourney dir: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ParseEnv overlays TOURNEY_* environment variables onto cfg.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load resolves the effective configuration for dir: the config file when
// present (defaults otherwise), then the environment.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	cfg.HomeCountry = strings.TrimSpace(cfg.HomeCountry)
	if cfg.HomeCountry == "" {
		cfg.HomeCountry = DefaultHomeCountry
	}
	if cfg.TxMaxAttempts < 0 {
		return nil, fmt.Errorf("TOURNEY_TX_MAX_ATTEMPTS must not be negative (got %d)", cfg.TxMaxAttempts)
	}
	if cfg.TxInitialBackoff < 0 {
		return nil, fmt.Errorf("TOURNEY_TX_INITIAL_BACKOFF must not be negative (got %s)", cfg.TxInitialBackoff)
	}

	return cfg, nil
}
