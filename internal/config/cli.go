package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	PhaseCmd       string
	StoreDriver    string
	CountdownHours float64
	CountUp        bool
	DisableNotify  bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			PhaseCmd:       ctx.String("phase-cmd"),
			StoreDriver:    ctx.String("store"),
			CountdownHours: ctx.Float64("countdown"),
			CountUp:        ctx.Bool("count-up"),
			DisableNotify:  ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.CountdownHours < 0 {
		return errInvalidCountdown.Fmt(opts.CountdownHours)
	}

	if opts.CountdownHours > 0 {
		c.Timer.CountMode = CountDown
		c.Timer.CountdownHours = opts.CountdownHours
	}

	if opts.CountUp {
		c.Timer.CountMode = CountUp
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.PhaseCmd != "" {
		c.Timer.PhaseCmd = opts.PhaseCmd
	}

	if opts.StoreDriver != "" {
		c.Store.Driver = opts.StoreDriver
	}

	return nil
}
