// Package timer runs the alternating work and break phases of a tracking
// session
package timer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tracker/internal/timeutil"
)

// Recorder folds a finished work phase into the ledger.
type Recorder interface {
	RecordPhase(ctx context.Context, activityID int64, res PhaseResult) error
}

// Options controls a tracking run.
type Options struct {
	ActivityName     string
	PhaseCmd         string
	ActivityID       int64
	Mode             Mode
	CountdownSeconds int
}

// Summary is the time spent working and pausing during a run.
type Summary struct {
	Worked time.Duration
	Paused time.Duration
}

// Timer alternates work and break phases until the operator quits.
type Timer struct {
	phase    *Phase
	recorder Recorder
	out      io.Writer
	opts     Options
}

// New creates a new timer.
func New(phase *Phase, recorder Recorder, out io.Writer, opts Options) *Timer {
	return &Timer{
		phase:    phase,
		recorder: recorder,
		out:      out,
		opts:     opts,
	}
}

// Run loops between work and break phases. Every work phase is recorded
// before the next phase starts. The loop ends when a phase is ended with
// "q" or the input closes, or when recording fails.
func (t *Timer) Run(ctx context.Context) (Summary, error) {
	var (
		worked, paused int
		summary        Summary
	)

	mode := t.opts.Mode
	remaining := t.opts.CountdownSeconds

	slog.InfoContext(
		ctx,
		"tracking started",
		slog.Int64("activity_id", t.opts.ActivityID),
		slog.String("mode", mode.String()),
		slog.Int("countdown_seconds", remaining),
	)

	for {
		pterm.Fprintln(t.out, "Started work timer!")

		res := t.phase.RunPhase(ctx, mode, remaining, false)
		mode, remaining = res.Mode, res.RemainingSeconds

		slog.DebugContext(ctx, "work phase", slog.String("result", spew.Sdump(res)))

		err := t.recorder.RecordPhase(ctx, t.opts.ActivityID, res)
		if err != nil {
			return summary, errRecordPhase.Wrap(err)
		}

		worked += res.ElapsedSeconds
		summary.Worked += res.Elapsed

		fmt.Fprintf(
			t.out,
			"Worked for %02d minutes and %02d seconds\n",
			worked/60,
			worked%60,
		)

		t.afterPhase(ctx)

		if res.Quit() {
			break
		}

		pterm.Fprintln(t.out, "Started break timer!")

		res = t.phase.RunPhase(ctx, mode, remaining, true)

		paused += res.ElapsedSeconds
		summary.Paused += res.Elapsed

		fmt.Fprintf(
			t.out,
			"Paused for %02d minutes and %02d seconds\n",
			paused/60,
			paused%60,
		)

		t.afterPhase(ctx)

		if res.Quit() {
			break
		}
	}

	fmt.Fprintf(
		t.out,
		"Worked for: %s\nPaused for: %s\n",
		timeutil.HoursToClock(timeutil.SecondsToHours(worked)),
		timeutil.HoursToClock(timeutil.SecondsToHours(paused)),
	)

	slog.InfoContext(
		ctx,
		"tracking finished",
		slog.Int64("activity_id", t.opts.ActivityID),
		slog.Int("worked_seconds", worked),
		slog.Int("paused_seconds", paused),
	)

	return summary, nil
}

// afterPhase runs the configured phase command. A failing command is
// reported but does not end the run.
func (t *Timer) afterPhase(ctx context.Context) {
	err := runPhaseCmd(ctx, t.opts.PhaseCmd)
	if err != nil {
		pterm.Error.Println(err)
		slog.ErrorContext(ctx, "phase command failed", slog.Any("error", err))
	}
}

// runPhaseCmd executes the specified command.
func runPhaseCmd(ctx context.Context, phaseCmd string) error {
	if phaseCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(phaseCmd)
	if err != nil {
		return errParsePhaseCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)

	if err := cmd.Run(); err != nil {
		return errRunPhaseCmd.Fmt(phaseCmd).Wrap(err)
	}

	return nil
}
