// Package logger configures the process-wide log output.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w. Verbose enables debug output;
// the default level keeps compile output free of log noise.
func New(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
