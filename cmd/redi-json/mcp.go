package main

import (
	"context"
	"os"

	"github.com/rediwo/redi-json/config"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/mcp"
)

func runMCP(ctx context.Context, cfg *config.Config) error {
	// stdout carries the protocol.
	l := logger.NewDefaultLoggerWithWriter("RediJSON", os.Stderr)
	l.SetLevel(logger.ParseLogLevel(cfg.Server.LogLevel))
	logger.SetGlobalLogger(l)

	store, registry, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := mcp.NewServer(mcp.ServerConfig{
		Store:    store,
		Registry: registry,
		Logger:   l,
		Version:  version,
	})
	if err != nil {
		return err
	}
	return server.Run(ctx)
}
