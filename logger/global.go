package logger

import "sync"

var (
	globalLogger Logger = NewNullLogger()
	globalMu     sync.RWMutex
)

// SetGlobalLogger replaces the process-wide logger; nil resets it to a NullLogger
func SetGlobalLogger(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if l == nil {
		l = NewNullLogger()
	}
	globalLogger = l
}

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(format string, args ...any) { GetGlobalLogger().Debug(format, args...) }
func Info(format string, args ...any)  { GetGlobalLogger().Info(format, args...) }
func Warn(format string, args ...any)  { GetGlobalLogger().Warn(format, args...) }
func Error(format string, args ...any) { GetGlobalLogger().Error(format, args...) }
