package middleware

import (
	"net/http"

	"github.com/rediwo/redi-json/logger"
)

const internalErrorBody = `{"success":false,"data":null,"error":{"code":"INTERNAL_ERROR","message":"Internal Server Error"}}`

// Recover turns a panicking handler into a 500 response in the API's error
// envelope. http.ErrAbortHandler is passed on.
func Recover(l logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l.Error("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(internalErrorBody))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
