package app

import (
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/maruel/natural"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/ayoisaiah/tracker/internal/config"
	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/internal/ui"
	"github.com/ayoisaiah/tracker/store"
)

// sortByName orders activities by name the way a person would, so
// "task2" comes before "task10".
func sortByName(activities []models.Activity) {
	slices.SortStableFunc(activities, func(a, b models.Activity) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		default:
			return 0
		}
	})
}

// printActivities prints an activity table to the command-line.
func printActivities(w io.Writer, activities []models.Activity) {
	sortByName(activities)

	tableBody := [][]string{
		{"ID", "NAME", "GROUP", "ADDED", "TOTAL", "STATUS"},
	}

	for _, a := range activities {
		status := ui.Green("active")
		if !a.Activated {
			status = ui.Red("deactivated")
		}

		tableBody = append(tableBody, []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			strconv.Itoa(a.GroupID),
			a.AddedWhen,
			timeutil.HoursToClock(a.HoursTotal),
			status,
		})
	}

	ui.PrintTable(tableBody, w)
}

// chooseActivity returns the activity given with --activity, or asks the
// operator to pick one of the activated activities.
func chooseActivity(ctx *cli.Context, db store.DB) (*models.Activity, error) {
	if ctx.IsSet("activity") {
		id, err := parseActivityID(ctx.String("activity"))
		if err != nil {
			return nil, err
		}

		a, err := db.Activity(ctx.Context, id)
		if err != nil {
			return nil, err
		}

		if !a.Activated {
			return nil, errActivityDeactivated.Fmt(a.ID, a.ID)
		}

		return a, nil
	}

	activities, err := db.Activities(ctx.Context, false)
	if err != nil {
		return nil, err
	}

	if len(activities) == 0 {
		return nil, errNoActivities
	}

	if !isTerminal() {
		return nil, errActivityRequired
	}

	sortByName(activities)

	options := make([]huh.Option[int], len(activities))
	for i := range activities {
		options[i] = huh.NewOption(activities[i].Name, i)
	}

	var choice int

	err = huh.NewSelect[int]().
		Title("Which activity are you working on?").
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		return nil, errPickActivity.Wrap(err)
	}

	return &activities[choice], nil
}

func isTerminal() bool {
	f, ok := config.Stdin.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(f.Fd()))
}
