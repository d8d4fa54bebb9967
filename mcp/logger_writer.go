package mcp

import (
	"encoding/json"
	"strings"

	"github.com/rediwo/redi-json/logger"
)

// LoggerWriter implements io.Writer to bridge MCP's transport log to our logger
type LoggerWriter struct {
	logger logger.Logger
	prefix string
}

// NewLoggerWriter creates a new logger writer
func NewLoggerWriter(l logger.Logger, prefix string) *LoggerWriter {
	return &LoggerWriter{
		logger: l,
		prefix: prefix,
	}
}

// Write logs every JSON-RPC message written to it at debug level, errors at
// error level
func (w *LoggerWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		msg := strings.TrimSpace(line)
		if msg == "" {
			continue
		}

		var rpc struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
			Error  *struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		switch {
		case json.Unmarshal([]byte(msg), &rpc) != nil:
			w.logger.Debug("[%s] %s", w.prefix, truncate(msg, 200))
		case rpc.Error != nil:
			w.logger.Error("[%s] ← Error #%v: code=%d message=%s", w.prefix, rpc.ID, rpc.Error.Code, rpc.Error.Message)
		case rpc.Method != "":
			w.logger.Debug("[%s] → Request #%v: %s", w.prefix, rpc.ID, rpc.Method)
		default:
			w.logger.Debug("[%s] ← Response #%v: %s", w.prefix, rpc.ID, truncate(msg, 200))
		}
	}
	return len(p), nil
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
