// Package enginelog configures the structured logger the engine uses
// for programmer-error events (it logs no lifecycle events). Takes its
// level as an
// explicit argument rather than reading it from the environment: the
// engine itself carries no persisted state and never reaches for
// os.Getenv.
package enginelog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger writing text-formatted entries to stdout at
// the given level. A host wanting JSON output or a different sink should
// build its own *logrus.Logger and pass it to engine.Config.Logger
// instead of calling New.
func New(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
	return log
}

// Discard returns a logger that drops every entry, for hosts and tests
// that don't want engine logs on stdout.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
