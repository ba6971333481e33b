package stats

import "github.com/ayoisaiah/tracker/internal/apperr"

var errInvalidDays = &apperr.Error{
	Message: "number of days must be at least 1, got %d",
}
