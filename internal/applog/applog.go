// Package applog wraps github.com/sirupsen/logrus for the CLI's operational
// logging: a summary once all inputs are parsed and typechecked, and the
// path of the output file when one is written. Diagnostics (parse/type
// errors) never go through this logger; the CLI renders those with
// diag.Render directly to stderr.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a *logrus.Logger writing to stderr, defaulting to a
// human-readable text formatter. verbose raises the level to Debug; quiet
// raises it to Warn; json selects the JSON formatter instead of text.
func New(verbose, quiet, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr

	if json {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
