// Package logger provides small factory wrappers around
// charmbracelet/log so every package in this module configures its
// logger the same way.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a charm log that respects the global log level, with
// no timestamp - suited to short-lived CLI invocations.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// New creates a charm log with timestamps enabled, suited to
// long-running processes (servers, batch executors).
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a charm log with fully custom settings.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       formatter,
	})
}

// Debug gates a tracing logger behind a boolean flag, following the
// original's self.debug-gated eprintln! pattern (see
// original_source/src/lib.rs::find_nearest_anahashes) - when off,
// returns a logger set above Debug level so call sites can log
// unconditionally without branching.
func Debug(prefix string, enabled bool) *log.Logger {
	l := New(prefix)
	if enabled {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	return l
}
