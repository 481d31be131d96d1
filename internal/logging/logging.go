package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing to stderr. An unknown level is reported
// and replaced by info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using INFO")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
