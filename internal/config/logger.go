package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Handlers and services log through
// it with structured fields so output stays machine-parseable in production.
var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

// ConfigureLogger applies environment-dependent logger settings.
func ConfigureLogger(environment string) {
	if environment == "development" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		Log.SetLevel(logrus.DebugLevel)
	}
}
