// Package logger provides the leveled printf-style logger shared by the
// serializer, the record store and the API servers.
package logger

import "io"

// Logger interface defines core logging methods
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
	SetOutput(w io.Writer)
}

// OrGlobal returns l, or the global logger when l is nil
func OrGlobal(l Logger) Logger {
	if l == nil {
		return GetGlobalLogger()
	}
	return l
}
