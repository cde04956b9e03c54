// Package log wraps logrus behind a small interface so library code does not
// depend on a concrete logging backend.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of logging used across the module.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)

	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithError(err error) Logger
}

var root = newLogrusLogger()

// Get returns the module logger.
func Get() Logger { return root }

// SetLevel adjusts the verbosity. Unknown levels fall back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	root.log.Logger.SetLevel(parsed)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	root.log.Logger.SetOutput(w)
}

type logrusLogger struct {
	log *logrus.Entry
}

func newLogrusLogger() *logrusLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logrusLogger{log: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debug(args ...any)                 { l.log.Debug(args...) }
func (l *logrusLogger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l *logrusLogger) Info(args ...any)                  { l.log.Info(args...) }
func (l *logrusLogger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l *logrusLogger) Warn(args ...any)                  { l.log.Warn(args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l *logrusLogger) Error(args ...any)                 { l.log.Error(args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

func (l *logrusLogger) WithField(key string, value any) Logger {
	return &logrusLogger{log: l.log.WithField(key, value)}
}

func (l *logrusLogger) WithFields(fields map[string]any) Logger {
	return &logrusLogger{log: l.log.WithFields(logrus.Fields(fields))}
}

func (l *logrusLogger) WithError(err error) Logger {
	return &logrusLogger{log: l.log.WithError(err)}
}
