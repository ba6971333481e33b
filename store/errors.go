package store

import "github.com/ayoisaiah/tracker/internal/apperr"

var (
	// ErrNotFound means no ledger row exists for an activity and date.
	ErrNotFound = &apperr.Error{
		Message: "no ledger entry for activity %d on %s",
	}

	ErrActivityNotFound = &apperr.Error{
		Message: "activity %d does not exist",
	}

	ErrMalformedDB = &apperr.Error{
		Message: "database at %s is malformed: expected 2 tables, found %d",
	}

	ErrAlreadyRunning = &apperr.Error{
		Message: "is the tracker already running? Only one instance can be active at a time",
	}

	ErrUnknownDriver = &apperr.Error{
		Message: "unknown store driver %q",
	}
)
