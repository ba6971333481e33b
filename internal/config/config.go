// Package config assembles the tracker settings from the config file, the
// first-run prompt and command-line flags.
package config

import (
	"fmt"
	"io"
	"os"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer         TimerConfig        `mapstructure:"timer"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Store         StoreConfig        `mapstructure:"store"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Display       DisplayConfig      `mapstructure:"display"`
		PathToConfig  string             `mapstructure:"-"`
	}

	// TimerConfig holds the phase timer settings.
	TimerConfig struct {
		CountMode      CountMode `mapstructure:"count_mode"`
		PhaseCmd       string    `mapstructure:"phase_cmd"`
		CountdownHours float64   `mapstructure:"countdown_hours"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// StoreConfig selects the storage backend.
	StoreConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		LogLevel string `mapstructure:"log_level"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error

	// CountMode is the default direction of the work clock.
	CountMode string
)

const Version = "v1.2.0"

const (
	CountUp   CountMode = "up"
	CountDown CountMode = "down"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", errConfigOption, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}
