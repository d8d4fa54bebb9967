package rest

import (
	"net/http"

	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/handlers"
	"github.com/rediwo/redi-json/rest/middleware"
)

// Router handles REST API routing
type Router struct {
	mux         *http.ServeMux
	dataHandler *handlers.DataHandler
	logger      logger.Logger
}

// NewRouter creates a new REST API router
func NewRouter(dataHandler *handlers.DataHandler, l logger.Logger) *Router {
	if l == nil {
		l = logger.NewDefaultLogger("REST")
	}

	router := &Router{
		mux:         http.NewServeMux(),
		dataHandler: dataHandler,
		logger:      l,
	}

	router.setupRoutes()
	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	r.Handle("GET /api", http.HandlerFunc(r.dataHandler.Models))
	r.Handle("GET /api/{model}", http.HandlerFunc(r.dataHandler.Find))
	r.Handle("GET /api/{model}/{id}", http.HandlerFunc(r.dataHandler.FindOne))
}

// Handle mounts handler at pattern behind request logging and panic
// recovery. Other APIs, such as GraphQL, are mounted next to the REST routes
// this way.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, middleware.Chain(
		handler,
		middleware.Logging(r.logger),
		middleware.Recover(r.logger),
	))
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
