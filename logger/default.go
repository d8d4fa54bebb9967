package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DefaultLogger writes timestamped, optionally colored lines to an io.Writer
type DefaultLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *log.Logger
	prefix string
	color  bool
}

// NewDefaultLogger creates a logger writing to stdout at info level
func NewDefaultLogger(prefix string) *DefaultLogger {
	return NewDefaultLoggerWithWriter(prefix, os.Stdout)
}

// NewDefaultLoggerWithWriter creates a logger writing to w at info level
func NewDefaultLoggerWithWriter(prefix string, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level:  LogLevelInfo,
		logger: log.New(w, "", 0),
		prefix: prefix,
		color:  true,
	}
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetOutput sets the output writer
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// SetColor toggles ANSI level colors
func (l *DefaultLogger) SetColor(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = enabled
}

func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.level < level {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	levelStr := level.String()
	if l.color {
		levelStr = GetLevelColor(level) + levelStr + ColorReset
	}

	if l.prefix != "" {
		l.logger.Printf("%s [%s] %s: %s", timestamp, l.prefix, levelStr, message)
	} else {
		l.logger.Printf("%s %s: %s", timestamp, levelStr, message)
	}
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}
