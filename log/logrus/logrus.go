// Package logrus adapts a logrus entry to the toolcache Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/dev-indra/toolcache"
)

var _ toolcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f toolcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f toolcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f toolcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f toolcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
