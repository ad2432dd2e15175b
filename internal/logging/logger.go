package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

// Init sets up the process-wide logger. The level is read from the
// LOG_LEVEL environment variable and defaults to info.
func Init() *log.Logger {
	logger = log.New(os.Stderr)
	logger.SetReportTimestamp(true)

	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// Get returns the process-wide logger, initialising it on first use.
func Get() *log.Logger {
	if logger == nil {
		Init()
	}
	return logger
}

// WithChunkCoords returns a logger with chunk coordinate context.
func WithChunkCoords(cx, cz int) *log.Logger {
	return Get().With("chunk_x", cx, "chunk_z", cz)
}
