// Package ledger folds tracked time into the per-activity, per-day hours
// ledger and the running total of each activity.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/store"
	"github.com/ayoisaiah/tracker/timer"
)

// Accumulator writes hours into the store. Upserts read then write, which
// is safe only while a single session uses the store.
type Accumulator struct {
	db store.DB
}

// New returns an Accumulator backed by db.
func New(db store.DB) *Accumulator {
	return &Accumulator{db: db}
}

// UpsertLedgerHours adds delta hours to the ledger row of an activity on
// day, creating the row if needed, and returns the row's new value.
func (a *Accumulator) UpsertLedgerHours(
	ctx context.Context,
	activityID int64,
	day timeutil.Date,
	delta float64,
) (float64, error) {
	date := day.String()

	current, err := a.db.LedgerHours(ctx, activityID, date)
	if errors.Is(err, store.ErrNotFound) {
		hours := timeutil.Round4(delta)

		err = a.db.InsertLedgerRow(
			ctx,
			models.NewLedgerEntry(activityID, day, hours),
		)
		if err != nil {
			return 0, ErrStore.Wrap(err)
		}

		slog.DebugContext(
			ctx,
			"ledger row created",
			slog.Int64("activity_id", activityID),
			slog.String("date", date),
			slog.Float64("hours", hours),
		)

		return hours, nil
	}

	if err != nil {
		return 0, ErrStore.Wrap(err)
	}

	hours := timeutil.Round4(current + delta)

	err = a.db.UpdateLedgerHours(ctx, activityID, date, hours)
	if err != nil {
		return 0, ErrStore.Wrap(err)
	}

	slog.DebugContext(
		ctx,
		"ledger row updated",
		slog.Int64("activity_id", activityID),
		slog.String("date", date),
		slog.Float64("hours", hours),
	)

	return hours, nil
}

// RecordPhase adds a finished work phase to the ledger. A phase that crosses
// midnight is split by wall clock time between the two dates, while the
// activity total grows by the measured duration.
func (a *Accumulator) RecordPhase(
	ctx context.Context,
	activityID int64,
	res timer.PhaseResult,
) error {
	if err := a.checkActivity(ctx, activityID); err != nil {
		return err
	}

	hours := timeutil.SecondsToHours(res.ElapsedSeconds)

	if res.Start.Date == res.End.Date {
		if _, err := a.UpsertLedgerHours(ctx, activityID, res.Start.Date, hours); err != nil {
			return err
		}
	} else {
		after := timeutil.Round4(timeutil.HoursAfterMidnight(res.End))
		before := timeutil.Round4(timeutil.HoursBeforeMidnight(res.Start))

		if _, err := a.UpsertLedgerHours(ctx, activityID, res.End.Date, after); err != nil {
			return err
		}

		if _, err := a.UpsertLedgerHours(ctx, activityID, res.Start.Date, before); err != nil {
			return err
		}

		slog.InfoContext(
			ctx,
			"phase split at midnight",
			slog.Int64("activity_id", activityID),
			slog.Float64("before_midnight", before),
			slog.Float64("after_midnight", after),
			slog.Float64("elapsed_hours", hours),
		)
	}

	return a.addToTotal(ctx, activityID, hours)
}

// RecordManualEntry adds hours for an activity on a YYYY-MM-DD date. The
// input is validated in full before anything is written.
func (a *Accumulator) RecordManualEntry(
	ctx context.Context,
	activityID string,
	date string,
	hours float64,
) error {
	id, day, err := validateManualEntry(activityID, date, hours)
	if err != nil {
		return err
	}

	if err := a.checkActivity(ctx, id); err != nil {
		return err
	}

	hours = timeutil.Round4(hours)

	if _, err := a.UpsertLedgerHours(ctx, id, day, hours); err != nil {
		return err
	}

	slog.InfoContext(
		ctx,
		"manual entry recorded",
		slog.Int64("activity_id", id),
		slog.String("date", date),
		slog.Float64("hours", hours),
	)

	return a.addToTotal(ctx, id, hours)
}

func validateManualEntry(
	activityID, date string,
	hours float64,
) (int64, timeutil.Date, error) {
	if len(date) != timeutil.DateLen {
		return 0, timeutil.Date{}, ErrInvalidInput.Fmt(
			fmt.Sprintf("date %q must be in YYYY-MM-DD format", date),
		)
	}

	day, err := timeutil.ParseDate(date)
	if err != nil {
		return 0, timeutil.Date{}, ErrInvalidInput.Fmt(
			fmt.Sprintf("date %q is not a valid calendar date", date),
		)
	}

	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, timeutil.Date{}, ErrInvalidInput.Fmt(
			fmt.Sprintf("hours must be a finite non-negative number, got %v", hours),
		)
	}

	id, err := strconv.ParseInt(activityID, 10, 64)
	if err != nil || id < 0 {
		return 0, timeutil.Date{}, ErrInvalidInput.Fmt(
			fmt.Sprintf("activity id %q must be a non-negative integer", activityID),
		)
	}

	return id, day, nil
}

// checkActivity makes sure no ledger row is written for an unknown activity.
func (a *Accumulator) checkActivity(ctx context.Context, activityID int64) error {
	if _, err := a.db.ActivityTotal(ctx, activityID); err != nil {
		return ErrStore.Wrap(err)
	}

	return nil
}

func (a *Accumulator) addToTotal(
	ctx context.Context,
	activityID int64,
	hours float64,
) error {
	total, err := a.db.ActivityTotal(ctx, activityID)
	if err != nil {
		return ErrStore.Wrap(err)
	}

	err = a.db.SetActivityTotal(ctx, activityID, timeutil.Round4(total+hours))
	if err != nil {
		return ErrStore.Wrap(err)
	}

	return nil
}
