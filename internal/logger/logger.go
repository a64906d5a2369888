// Package logger provides leveled, structured logging for the
// application, with per-component sub-loggers.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the logging interface handed out to components.
type Logger = *log.Logger

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tasknest",
})

// SetLevel adjusts the global log level. Unknown names fall back to
// info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		std.SetLevel(log.DebugLevel)
	case "warn":
		std.SetLevel(log.WarnLevel)
	case "error":
		std.SetLevel(log.ErrorLevel)
	default:
		std.SetLevel(log.InfoLevel)
	}
}

// WithField returns a logger carrying a fixed key/value pair.
func WithField(key string, value interface{}) Logger {
	return std.With(key, value)
}
