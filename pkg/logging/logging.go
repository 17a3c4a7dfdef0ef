// Package logging defines the Logger collaborator the core injects instead
// of writing to stdout directly. The default implementation wraps
// sirupsen/logrus for structured, leveled fields; a Discard implementation
// exists for tests.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to a log line,
// e.g. {"k": 31, "nsplits": 4, "part_idx": 2}.
type Fields map[string]any

// Logger is the minimal structured-logging contract the core depends on.
// Every core package takes one of these rather than calling log.Printf
// directly, so callers can swap in Discard for tests or wire their own
// sink in a hosting application.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	WithFields(fields Fields) Logger
}

// logrusLogger is the default Logger, backed by sirupsen/logrus for
// leveled, structured output.
type logrusLogger struct {
	entry *logrus.Entry
}

// New returns a Logger that writes structured, leveled output to w.
func New(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// discard is a Logger that does nothing, used by tests and by callers that
// have not wired a real sink.
type discard struct{}

// Discard is the no-op Logger.
var Discard Logger = discard{}

func (discard) Debugf(string, ...any)     {}
func (discard) Infof(string, ...any)      {}
func (discard) Warnf(string, ...any)      {}
func (discard) Errorf(string, ...any)     {}
func (discard) WithFields(Fields) Logger  { return discard{} }
