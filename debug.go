package agentboard

import (
	"github.com/sirupsen/logrus"
)

// logger is a debug-only logger; it is silent unless the debugger is enabled.
type logger struct {
	entry           *logrus.Entry
	debuggerEnabled bool
}

func newLogger(base *logrus.Logger, enabled bool) *logger {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &logger{
		entry:           logrus.NewEntry(base).WithField("lib", "agentboard"),
		debuggerEnabled: enabled,
	}
}

func (l *logger) d(s string, args ...interface{}) {
	if l != nil && l.debuggerEnabled && l.entry != nil {
		l.entry.Debugf(s, args...)
	}
}

// warn is always emitted; it reports degraded operation such as a cache bypass.
func (l *logger) warn(err error, s string, args ...interface{}) {
	if l == nil || l.entry == nil {
		return
	}
	l.entry.WithError(err).Warnf(s, args...)
}

func (l *logger) WithField(key string, value interface{}) *logger {
	if l == nil || l.entry == nil {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value), debuggerEnabled: l.debuggerEnabled}
}

func (l *logger) WithFields(fields logrus.Fields) *logger {
	if l == nil || l.entry == nil {
		return l
	}
	return &logger{entry: l.entry.WithFields(fields), debuggerEnabled: l.debuggerEnabled}
}
