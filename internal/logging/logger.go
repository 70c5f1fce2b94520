// ABOUTME: Diagnostic logger shared by all commands
// ABOUTME: Writes leveled key/value lines to stderr via charmbracelet/log
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = New(os.Stderr, false)

// New builds a logger writing to w. Debug lowers the level from warn to debug.
func New(w io.Writer, debug bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "tally",
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
	})
	l.SetLevel(log.WarnLevel)
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Setup replaces the package logger.
func Setup(w io.Writer, debug bool) {
	logger = New(w, debug)
}

// L returns the package logger.
func L() *log.Logger {
	return logger
}

// Debug logs at debug level on the package logger.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Warn logs at warn level on the package logger.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}
