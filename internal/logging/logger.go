package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a JSON logger at the level named by LOG_LEVEL
// (default info), tagged with the service name.
func NewLogger(service string) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger.WithField("service", service)
}
