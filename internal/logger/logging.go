// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Component prefixes shared across symspell's subsystems, so log lines
// read consistently regardless of which binary emits them.
//
// The core query/build packages (engine, compound, segment, completion)
// deliberately carry no component prefix here: per the concurrency
// model, those operations are pure reads with no I/O in the hot path,
// and a logger call is I/O. Only the long-lived, I/O-adjacent
// components get one.
const (
	ComponentIPC        = "ipc"
	ComponentCLI        = "cli"
	ComponentDictLoader = "dictloader"
)

// New creates a new default charm log.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
