package timer

import "github.com/ayoisaiah/tracker/internal/apperr"

var (
	errParsePhaseCmd = &apperr.Error{
		Message: "unable to parse phase_cmd option",
	}

	errRunPhaseCmd = &apperr.Error{
		Message: "phase_cmd %q failed",
	}

	errRecordPhase = &apperr.Error{
		Message: "recording the work phase failed",
	}
)
