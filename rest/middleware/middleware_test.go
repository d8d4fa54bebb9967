package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rediwo/redi-json/logger"
	"github.com/stretchr/testify/assert"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
	}), mark("first"), mark("second"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, calls)
}

func newBufferLogger(buf *bytes.Buffer) logger.Logger {
	l := logger.NewDefaultLoggerWithWriter("Test", buf)
	l.SetColor(false)
	return l
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Logging(l), Recover(l))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/User", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"data":null,"error":{"code":"INTERNAL_ERROR","message":"Internal Server Error"}}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic serving GET /api/User: boom")
	assert.Contains(t, buf.String(), "ERROR: ")
	assert.Contains(t, buf.String(), "GET /api/User 500")
}

func TestRecover_PassesAbortHandler(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}), Recover(logger.NewNullLogger()))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		level  string
	}{
		{"ok", http.StatusOK, "hello", "GET /api/User?include=posts 200 5B", "INFO: "},
		{"implicit ok", 0, "", "GET /api/User?include=posts 200 0B", "INFO: "},
		{"client error", http.StatusNotFound, "{}", "GET /api/User?include=posts 404 2B", "WARN: "},
		{"server error", http.StatusBadGateway, "", "GET /api/User?include=posts 502 0B", "ERROR: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			}), Logging(newBufferLogger(&buf)))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/User?include=posts", nil))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}
