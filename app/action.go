package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tracker/internal/config"
	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/pathutil"
	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/internal/ui"
	"github.com/ayoisaiah/tracker/ledger"
	"github.com/ayoisaiah/tracker/stats"
	"github.com/ayoisaiah/tracker/store"
	"github.com/ayoisaiah/tracker/timer"
)

const (
	envNoColor        = "NO_COLOR"
	envTrackerNoColor = "TRACKER_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// bootstrap loads the configuration for a command and starts logging.
func bootstrap(ctx *cli.Context) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(path),
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	setupLogger(cfg.LogLevel())

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// openStore opens the configured storage backend.
func openStore(cfg *config.Config) (store.DB, error) {
	path := pathutil.SQLiteFilePath()
	if cfg.Store.Driver == config.DriverBolt {
		path = pathutil.BoltFilePath()
	}

	db, err := store.Open(cfg.Store.Driver, path)
	if err != nil {
		return nil, err
	}

	slog.Info(
		"store opened",
		slog.String("driver", cfg.Store.Driver),
		slog.String("path", path),
	)

	return db, nil
}

func parseActivityID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0, errInvalidActivityID.Fmt(s)
	}

	return id, nil
}

// workAction handles the work command which runs work and break phases for
// an activity until the operator quits.
func workAction(ctx *cli.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	activity, err := chooseActivity(ctx, db)
	if err != nil {
		return err
	}

	mode := timer.CountUp
	if cfg.Timer.CountMode == config.CountDown {
		mode = timer.CountDown
	}

	phaseOpts := []timer.PhaseOption{timer.WithOutput(config.Stdout)}
	if cfg.Notifications.Enabled {
		phaseOpts = append(phaseOpts, timer.WithNotifier(timer.DesktopNotifier{}))
	}

	t := timer.New(
		timer.NewPhase(config.Stdin, phaseOpts...),
		ledger.New(db),
		config.Stdout,
		timer.Options{
			ActivityID:       activity.ID,
			ActivityName:     activity.Name,
			Mode:             mode,
			CountdownSeconds: cfg.CountdownSeconds(),
			PhaseCmd:         cfg.Timer.PhaseCmd,
		},
	)

	pterm.Fprintln(config.Stdout, "Tracking "+ui.Highlight(activity.Name))

	_, err = t.Run(ctx.Context)

	return err
}

// manualAction handles the manual command which adds hours to an activity on
// a given date.
func manualAction(ctx *cli.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	date := timeutil.NormalizeDate(ctx.String("date"), time.Now())
	hours := ctx.Float64("hours")

	err = ledger.New(db).RecordManualEntry(
		ctx.Context,
		ctx.String("activity"),
		date,
		hours,
	)
	if err != nil {
		return err
	}

	pterm.Fprintln(
		config.Stdout,
		fmt.Sprintf("Added %v hours on %s", timeutil.Round4(hours), date),
	)

	return nil
}

// statsAction prints the report for the requested number of days.
func statsAction(ctx *cli.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	r, err := stats.Compute(ctx.Context, db, ctx.Int("days"), time.Now())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return stats.PrintJSON(config.Stdout, r)
	}

	stats.Print(config.Stdout, r)

	return nil
}

// addActivityAction stores a new activity.
func addActivityAction(ctx *cli.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(ctx.String("name"))
	if name == "" {
		return errEmptyName
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	a := &models.Activity{
		Name:      name,
		GroupID:   ctx.Int("group"),
		AddedWhen: time.Now().Format(timeutil.DateLayout),
		Activated: true,
	}

	id, err := db.AddActivity(ctx.Context, a)
	if err != nil {
		return err
	}

	pterm.Fprintln(
		config.Stdout,
		fmt.Sprintf("Added activity %s with id %d", ui.Highlight(a.Name), id),
	)

	return nil
}

// listActivitiesAction prints a table of activities.
func listActivitiesAction(ctx *cli.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	activities, err := db.Activities(ctx.Context, ctx.Bool("all"))
	if err != nil {
		return err
	}

	if len(activities) == 0 {
		pterm.Fprintln(config.Stdout, errNoActivities.Error())
		return nil
	}

	printActivities(config.Stdout, activities)

	return nil
}

// setActivatedAction returns the action for the deactivate and reactivate
// commands.
func setActivatedAction(activated bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		id, err := parseActivityID(ctx.Args().First())
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}

		defer db.Close()

		if err := db.SetActivated(ctx.Context, id, activated); err != nil {
			return err
		}

		status := "deactivated"
		if activated {
			status = "reactivated"
		}

		pterm.Fprintln(config.Stdout, fmt.Sprintf("Activity %d %s", id, status))

		return nil
	}
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = config.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		ui.DisableStyling()
	}

	// Disable colour output if TRACKER_NO_COLOR is set
	if _, exists := os.LookupEnv(envTrackerNoColor); exists {
		ui.DisableStyling()
	}

	if ctx.Bool("no-color") {
		ui.DisableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tracker")

	return nil
}
