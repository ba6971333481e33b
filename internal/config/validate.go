package config

import (
	"log/slog"
	"slices"
	"strings"
)

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Timer.CountMode != CountUp && c.Timer.CountMode != CountDown {
		return errInvalidCountMode.Fmt(c.Timer.CountMode)
	}

	if c.Timer.CountdownHours < 0 {
		return errInvalidCountdown.Fmt(c.Timer.CountdownHours)
	}

	if !slices.Contains([]string{DriverSQLite, DriverBolt}, c.Store.Driver) {
		return errUnknownDriver.Fmt(c.Store.Driver)
	}

	if _, ok := validLogLevels[strings.ToLower(c.Settings.LogLevel)]; !ok {
		return errInvalidLogLevel.Fmt(c.Settings.LogLevel)
	}

	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	return validLogLevels[strings.ToLower(c.Settings.LogLevel)]
}

// CountdownSeconds is the countdown budget in whole seconds.
func (c *Config) CountdownSeconds() int {
	return int(c.Timer.CountdownHours * 3600)
}
