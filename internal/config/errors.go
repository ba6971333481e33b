package config

import "github.com/ayoisaiah/tracker/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidCountMode = &apperr.Error{
		Message: "count mode must be 'up' or 'down', got %q",
	}

	errInvalidCountdown = &apperr.Error{
		Message: "countdown hours must not be negative, got %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver %q (must be sqlite or bolt)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}
)
