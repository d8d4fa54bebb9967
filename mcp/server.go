// Package mcp serves registered models to MCP clients. Tools list the models
// and return serialized records.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/serializer"
)

// ServerConfig holds MCP server configuration
type ServerConfig struct {
	Store    database.RecordStore
	Registry *serializer.Registry
	Logger   logger.Logger
	Version  string
}

// Server is an MCP server exposing read-only serialization tools
type Server struct {
	mcpServer *mcp.Server
	store     database.RecordStore
	registry  *serializer.Registry
	logger    logger.Logger
}

// NewServer creates the MCP server and registers its tools
func NewServer(config ServerConfig) (*Server, error) {
	if config.Store == nil {
		return nil, errors.New("store is required")
	}
	if config.Registry == nil {
		config.Registry = serializer.DefaultRegistry()
	}
	if config.Version == "" {
		config.Version = "dev"
	}

	l := logger.OrGlobal(config.Logger)
	s := &Server{
		store:    config.Store,
		registry: config.Registry,
		logger:   l,
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "redi-json",
		Version: config.Version,
	}, &mcp.ServerOptions{
		Instructions: "RediJSON MCP Server - read-only access to models serialized as JSON",
		InitializedHandler: func(ctx context.Context, session *mcp.ServerSession, params *mcp.InitializedParams) {
			if sessionID := session.ID(); sessionID != "" {
				l.Info("Client initialized session: %s", sessionID)
			} else {
				l.Info("Client initialized (no session ID)")
			}
		},
	})

	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves MCP over stdin and stdout until ctx is done or the client
// disconnects
func (s *Server) Run(ctx context.Context) error {
	var transport mcp.Transport
	transport = mcp.NewStdioTransport()

	if s.logger.GetLevel() >= logger.LogLevelDebug {
		transport = mcp.NewLoggingTransport(transport, NewLoggerWriter(s.logger, "MCP"))
	}

	s.logger.Info("MCP stdio server starting...")
	err := s.mcpServer.Run(ctx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP stdio server stopped with error: %v", err)
		return err
	}
	s.logger.Info("MCP stdio server stopped gracefully")
	return nil
}

// Handler serves MCP over the streamable HTTP transport
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		s.logger.Debug("New streamable connection from %s", r.RemoteAddr)
		return s.mcpServer
	}, nil)
}
