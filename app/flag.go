package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	storeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "Storage backend to use: sqlite or bolt (default: sqlite)",
	}

	activityIDFlag = &cli.StringFlag{
		Name:    "activity",
		Aliases: []string{"a"},
		Usage:   "ID of the activity to track. Prompts for one if omitted",
	}

	requiredActivityFlag = &cli.StringFlag{
		Name:     "activity",
		Aliases:  []string{"a"},
		Usage:    "ID of the activity",
		Required: true,
	}

	countdownFlag = &cli.Float64Flag{
		Name:    "countdown",
		Aliases: []string{"c"},
		Usage:   "Count down from the given number of work hours",
	}

	countUpFlag = &cli.BoolFlag{
		Name:  "count-up",
		Usage: "Count up even if the config file asks for a countdown",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when the countdown is finished",
	}

	phaseCmdFlag = &cli.StringFlag{
		Name:    "phase-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each phase",
	}

	dateFlag = &cli.StringFlag{
		Name:     "date",
		Usage:    "Date of the entry: YYYY-MM-DD or a phrase such as 'yesterday' or '3 days ago'",
		Required: true,
	}

	hoursFlag = &cli.Float64Flag{
		Name:     "hours",
		Usage:    "Hours to add",
		Required: true,
	}

	daysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of days before today to report on",
		Value: 7,
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the report as JSON",
	}

	nameFlag = &cli.StringFlag{
		Name:     "name",
		Aliases:  []string{"n"},
		Usage:    "Name of the activity",
		Required: true,
	}

	groupFlag = &cli.IntFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "Group the activity belongs to",
	}

	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Include deactivated activities",
	}
)
