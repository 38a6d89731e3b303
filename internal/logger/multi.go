package logger

import "github.com/harrison/davfind/internal/models"

// Logger is implemented by every logger in this package.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogIdentifierStart(identifier string, roots []string)
	LogIdentifierComplete(result models.IdentifierResult, done, total int)
	LogSummary(summary models.Summary)
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*FileLogger)(nil)
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogIdentifierStart(identifier string, roots []string) {
	for _, l := range m.loggers {
		l.LogIdentifierStart(identifier, roots)
	}
}

func (m *MultiLogger) LogIdentifierComplete(result models.IdentifierResult, done, total int) {
	for _, l := range m.loggers {
		l.LogIdentifierComplete(result, done, total)
	}
}

func (m *MultiLogger) LogSummary(summary models.Summary) {
	for _, l := range m.loggers {
		l.LogSummary(summary)
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                                               {}
func (n *NoOpLogger) LogDebug(message string)                                               {}
func (n *NoOpLogger) LogInfo(message string)                                                {}
func (n *NoOpLogger) LogWarn(message string)                                                {}
func (n *NoOpLogger) LogError(message string)                                               {}
func (n *NoOpLogger) LogIdentifierStart(identifier string, roots []string)                  {}
func (n *NoOpLogger) LogIdentifierComplete(result models.IdentifierResult, done, total int) {}
func (n *NoOpLogger) LogSummary(summary models.Summary)                                     {}
