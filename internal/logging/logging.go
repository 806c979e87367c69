// Package logging provides the structured logger shared by the build path
// and the CLI hosts. The core query path stays un-instrumented: a log call
// per record would defeat the bitmap-algebra performance goal.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing structured fields to stderr at level.
// Unparseable levels fall back to logrus.InfoLevel.
func New(level string) *log.Logger {
	logger := log.New()
	logger.Out = os.Stderr
	logger.Formatter = &log.TextFormatter{FullTimestamp: true}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Discard returns a logger that drops everything, for callers (tests,
// library embedders) that never want the core's build-path logging.
func Discard() *log.Logger {
	logger := log.New()
	logger.Out = nil
	logger.SetOutput(discardWriter{})
	return logger
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
