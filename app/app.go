// Package app wires the tracker commands together
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracker/internal/config"
)

// Get retrieves the tracker app instance.
func Get() *cli.App {
	trackerApp := &cli.App{
		Name: "tracker",
		Usage: `
		Tracker is a command-line productivity tracker. Pick an activity, alternate
		between work and break phases with a live clock, and every work phase is
		added to a per-day ledger of hours.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:  "work",
				Usage: "Track an activity. Press ENTER to switch between work and break, or type q to stop",
				Flags: []cli.Flag{
					activityIDFlag,
					countdownFlag,
					countUpFlag,
					disableNotificationFlag,
					phaseCmdFlag,
				},
				Action: workAction,
			},
			{
				Name:  "manual",
				Usage: "Add hours to an activity for a past date",
				Flags: []cli.Flag{
					requiredActivityFlag,
					dateFlag,
					hoursFlag,
				},
				Action: manualAction,
			},
			{
				Name:  "stats",
				Usage: "Show the hours logged over the last few days (today excluded)",
				Flags: []cli.Flag{
					daysFlag,
					jsonFlag,
				},
				Action: statsAction,
			},
			{
				Name:  "activity",
				Usage: "Manage the activities that can be tracked",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a new activity",
						Flags:  []cli.Flag{nameFlag, groupFlag},
						Action: addActivityAction,
					},
					{
						Name:   "list",
						Usage:  "List activities",
						Flags:  []cli.Flag{allFlag},
						Action: listActivitiesAction,
					},
					{
						Name:      "deactivate",
						Usage:     "Stop offering an activity for tracking",
						ArgsUsage: "ID",
						Action:    setActivatedAction(false),
					},
					{
						Name:      "reactivate",
						Usage:     "Offer a deactivated activity for tracking again",
						ArgsUsage: "ID",
						Action:    setActivatedAction(true),
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			storeFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return trackerApp
}
