package ledger

import "github.com/ayoisaiah/tracker/internal/apperr"

var (
	// ErrInvalidInput is returned for a manual entry that fails validation.
	// Nothing is written when it occurs.
	ErrInvalidInput = &apperr.Error{
		Message: "invalid input: %s",
	}

	// ErrStore wraps any failure reported by the store.
	ErrStore = &apperr.Error{
		Message: "store operation failed",
	}
)
