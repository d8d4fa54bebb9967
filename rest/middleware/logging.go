package middleware

import (
	"net/http"
	"time"

	"github.com/rediwo/redi-json/logger"
)

// Logging logs one line per request with its status, response size and
// duration. Server errors log at error level and client errors at warn.
func Logging(l logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			log := l.Info
			switch {
			case recorder.status >= http.StatusInternalServerError:
				log = l.Error
			case recorder.status >= http.StatusBadRequest:
				log = l.Warn
			}
			log("%s %s %d %dB %v", r.Method, r.URL.RequestURI(), recorder.status, recorder.bytes, time.Since(start))
		})
	}
}

// statusRecorder remembers the status code and counts the body bytes
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Flush lets streaming handlers such as GraphiQL flush through the recorder
func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
