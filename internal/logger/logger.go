package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init configures it; until then it logs
// text at info level.
var Log = logrus.New()

// Init sets level and output format ("json" or "text").
func Init(level, format string) {
	Log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// WithContext returns an entry tagged with the component and the action
// being performed.
func WithContext(component, action string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"component": component,
		"action":    action,
	})
}
