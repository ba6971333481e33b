package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyCountMode            = "timer.count_mode"
	keyCountdownHours       = "timer.countdown_hours"
	keyPhaseCmd             = "timer.phase_cmd"
	keyNotificationsEnabled = "notifications.enabled"
	keyStoreDriver          = "store.driver"
	keyLogLevel             = "settings.log_level"
	keyDarkTheme            = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing one with defaults if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		c.PathToConfig = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper sets defaults, and seeds values answered in the first-run
// prompt so they end up in the written file.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyCountMode, string(CountUp))
	v.SetDefault(keyCountdownHours, 1.0)
	v.SetDefault(keyPhaseCmd, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyStoreDriver, DriverSQLite)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDarkTheme, true)

	if c.Timer.CountMode != "" {
		v.Set(keyCountMode, string(c.Timer.CountMode))
		v.Set(keyCountdownHours, c.Timer.CountdownHours)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
