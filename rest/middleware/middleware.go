// Package middleware wraps the API handlers with request logging and panic
// recovery.
package middleware

import "net/http"

// Middleware wraps a handler
type Middleware func(http.Handler) http.Handler

// Chain wraps h with middleware. The first middleware is the outermost, so it
// sees the request first and the response last.
func Chain(h http.Handler, middleware ...Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
