// Package store persists activities and the per-day hours ledger.
package store

import (
	"context"

	"github.com/ayoisaiah/tracker/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// LedgerHours returns the hours logged for an activity on a date
	// (YYYY-MM-DD), or ErrNotFound if there is no row.
	LedgerHours(ctx context.Context, activityID int64, date string) (float64, error)
	// InsertLedgerRow creates a ledger row.
	InsertLedgerRow(ctx context.Context, entry models.LedgerEntry) error
	// UpdateLedgerHours overwrites the hours of an existing ledger row.
	UpdateLedgerHours(
		ctx context.Context,
		activityID int64,
		date string,
		hours float64,
	) error
	// ActivityTotal returns the running total of an activity, or
	// ErrActivityNotFound.
	ActivityTotal(ctx context.Context, activityID int64) (float64, error)
	// SetActivityTotal overwrites the running total of an activity.
	SetActivityTotal(ctx context.Context, activityID int64, total float64) error

	// AddActivity stores a new activity and returns its id.
	AddActivity(ctx context.Context, a *models.Activity) (int64, error)
	// SetActivated toggles whether an activity is offered for tracking.
	SetActivated(ctx context.Context, activityID int64, activated bool) error
	// Activities lists activities in id order. Deactivated ones are
	// included only when all is true.
	Activities(ctx context.Context, all bool) ([]models.Activity, error)
	// Activity returns a single activity.
	Activity(ctx context.Context, activityID int64) (*models.Activity, error)
	// LedgerForDates sums the ledger hours per activity over the given
	// dates. Activities without rows on those dates are omitted.
	LedgerForDates(ctx context.Context, dates []string) ([]models.ActivityHours, error)
	// OldestLedgerDate returns the earliest date with a ledger row. ok is
	// false when the ledger is empty.
	OldestLedgerDate(ctx context.Context) (date string, ok bool, err error)
	// Close ends the database connection
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open returns the store for the named driver at path.
func Open(driver, path string) (DB, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLite(path)
	case DriverBolt:
		return NewBolt(path)
	default:
		return nil, ErrUnknownDriver.Fmt(driver)
	}
}
