package app

import "github.com/ayoisaiah/tracker/internal/apperr"

var (
	errNoActivities = &apperr.Error{
		Message: "no activities to track: add one with 'tracker activity add --name NAME --group N'",
	}

	errActivityRequired = &apperr.Error{
		Message: "input is not a terminal: pass the activity with --activity",
	}

	errActivityDeactivated = &apperr.Error{
		Message: "activity %d is deactivated: reactivate it with 'tracker activity reactivate %d'",
	}

	errInvalidActivityID = &apperr.Error{
		Message: "activity id must be a non-negative integer, got %q",
	}

	errEmptyName = &apperr.Error{
		Message: "activity name must not be empty",
	}

	errPickActivity = &apperr.Error{
		Message: "choosing an activity failed",
	}
)
