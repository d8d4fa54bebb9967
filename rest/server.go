// Package rest exposes registered models over a read-only JSON API.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/graphql"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/handlers"
	"github.com/rediwo/redi-json/serializer"
)

// Server represents a REST API server
type Server struct {
	Router  *Router // Exported for testing
	http    *http.Server
	port    int
	graphql bool
	logger  logger.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Store    database.RecordStore
	Registry *serializer.Registry
	Port     int
	LogLevel string
	Logger   logger.Logger

	// GraphQL mounts the GraphQL API at /graphql
	GraphQL bool
}

// NewServer creates a new REST API server
func NewServer(config ServerConfig) (*Server, error) {
	if config.Store == nil {
		return nil, errors.New("store is required")
	}
	if config.Registry == nil {
		config.Registry = serializer.DefaultRegistry()
	}

	l := config.Logger
	if l == nil {
		l = logger.NewDefaultLogger("REST")
		if config.LogLevel != "" {
			l.SetLevel(logger.ParseLogLevel(config.LogLevel))
		}
	}

	// Set default port if not provided
	if config.Port == 0 {
		config.Port = 8080
	}

	router := NewRouter(handlers.NewDataHandler(config.Store, config.Registry, l), l)
	if config.GraphQL {
		gql, err := graphql.NewHandler(config.Store, config.Registry, l)
		if err != nil {
			return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
		}
		router.Handle("/graphql", gql)
	}

	return &Server{
		Router: router,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		port:    config.Port,
		graphql: config.GraphQL,
		logger:  l,
	}, nil
}

// Start serves requests until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server on http://localhost:%d", s.port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  - GET    /api")
	s.logger.Info("  - GET    /api/{model}")
	s.logger.Info("  - GET    /api/{model}/{id}")
	if s.graphql {
		s.logger.Info("  - POST   /graphql")
	}

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for the active ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down REST API server")
	return s.http.Shutdown(ctx)
}
