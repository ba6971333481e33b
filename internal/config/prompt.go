package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"golang.org/x/term"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	CountMode      CountMode
	CountdownHours float64
}

// WithPromptConfig returns an Option that asks for the timer defaults when
// no config file exists yet and stdin is a terminal.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	_ = putils.BulletListFromString(`Follow the prompts below to configure the tracker for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'tracker edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[CountMode]().
				Title("Work clock").
				Options(
					huh.NewOption("Count up", CountUp).Selected(true),
					huh.NewOption("Count down from a budget", CountDown),
				).
				Value(&opts.CountMode),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Countdown budget").
				Options(
					huh.NewOption("1 hour", 1.0).Selected(true),
					huh.NewOption("2 hours", 2.0),
					huh.NewOption("4 hours", 4.0),
					huh.NewOption("8 hours", 8.0),
				).
				Value(&opts.CountdownHours),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	pterm.Println()

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Timer.CountMode = opts.CountMode
	c.Timer.CountdownHours = opts.CountdownHours
}
