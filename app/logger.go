package app

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/tracker/internal/pathutil"
)

const (
	logMaxSizeMB  = 5
	logMaxBackups = 3
	logMaxAgeDays = 30
)

// setupLogger sends structured logs to a rotating file. Nothing is logged
// to the terminal.
func setupLogger(level slog.Level) {
	w := &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}
