package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLoggerWithWriter("TestApp", &buf)
	l.SetLevel(LogLevelDebug)

	tests := []struct {
		level   LogLevel
		logFunc func(string, ...any)
		message string
	}{
		{LogLevelDebug, l.Debug, "Debug message"},
		{LogLevelInfo, l.Info, "Info message"},
		{LogLevelWarn, l.Warn, "Warn message"},
		{LogLevelError, l.Error, "Error message"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()
			tt.logFunc("%s %d", tt.message, 42)

			output := buf.String()
			assert.Contains(t, output, tt.level.String())
			assert.Contains(t, output, tt.message+" 42")
			assert.Contains(t, output, "[TestApp]")
		})
	}
}

func TestDefaultLogger_NoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLoggerWithWriter("", &buf)
	l.SetColor(false)

	l.Warn("plain")

	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "WARN: plain")
}

func TestLogLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger("TestApp")
	l.SetOutput(&buf)
	l.SetLevel(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, l.GetLevel())

	l.Debug("This should not appear")
	l.Info("This should not appear")
	assert.Zero(t, buf.Len())

	l.Warn("This should appear")
	assert.NotZero(t, buf.Len())

	buf.Reset()
	l.Error("This should appear")
	assert.NotZero(t, buf.Len())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"none", LogLevelNone},
		{"off", LogLevelNone},
		{"invalid", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var buf bytes.Buffer
	l := NewDefaultLoggerWithWriter("G", &buf)
	SetGlobalLogger(l)

	Info("hello %s", "world")
	assert.Contains(t, buf.String(), "hello world")
	assert.Same(t, l, OrGlobal(nil))

	SetGlobalLogger(nil)
	assert.IsType(t, &NullLogger{}, GetGlobalLogger())
}
