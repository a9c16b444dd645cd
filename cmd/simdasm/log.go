// Completion: 100% - Helper module complete
package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

// sink routes the encoder's logr output into a logrus logger. logr
// verbosity 0 maps to info, 1 to debug and anything above to trace.
type sink struct {
	logger *logrus.Logger
	fields logrus.Fields
}

func newLogger(l *logrus.Logger) logr.Logger {
	return logr.New(&sink{logger: l, fields: logrus.Fields{}})
}

func logrusLevel(level int) logrus.Level {
	switch {
	case level <= 0:
		return logrus.InfoLevel
	case level == 1:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

func (*sink) Init(logr.RuntimeInfo) {} // ignored

func (s *sink) Enabled(level int) bool {
	return s.logger.IsLevelEnabled(logrusLevel(level))
}

func (s *sink) entry(kvs []any) *logrus.Entry {
	fields := make(logrus.Fields, len(s.fields)+len(kvs)/2)
	for k, v := range s.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		fields[fmt.Sprint(kvs[i])] = kvs[i+1]
	}
	return s.logger.WithFields(fields)
}

func (s *sink) Info(level int, msg string, kvs ...any) {
	s.entry(kvs).Log(logrusLevel(level), msg)
}

func (s *sink) Error(err error, msg string, kvs ...any) {
	s.entry(kvs).WithError(err).Error(msg)
}

func (s *sink) WithValues(kvs ...any) logr.LogSink {
	return &sink{logger: s.logger, fields: s.entry(kvs).Data}
}

func (s *sink) WithName(name string) logr.LogSink {
	if prev, ok := s.fields["logger"]; ok {
		name = fmt.Sprintf("%v/%s", prev, name)
	}
	return s.WithValues("logger", name)
}
