package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rediwo/redi-json/config"
	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest"
	"github.com/rediwo/redi-json/serializer"
)

type serveOptions struct {
	dbURI    string
	port     int
	logLevel string
	graphql  bool
}

// loadConfig reads the models file and applies command line overrides
func loadConfig(path string, opts serveOptions) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) && opts.dbURI != "" {
		// Without a models file the API serves no models.
		cfg, err = config.Parse(strings.NewReader(""))
	}
	if err != nil {
		return nil, err
	}

	if opts.dbURI != "" {
		cfg.Server.Database = opts.dbURI
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.logLevel != "" {
		cfg.Server.LogLevel = opts.logLevel
	}

	if cfg.Server.Database == "" {
		return nil, fmt.Errorf("no database configured, set server.database or --db")
	}
	return cfg, nil
}

// openStore registers the configured models and opens their database
func openStore(ctx context.Context, cfg *config.Config, l logger.Logger) (database.RecordStore, *serializer.Registry, error) {
	registry := serializer.NewRegistry()
	if err := cfg.Register(registry); err != nil {
		return nil, nil, err
	}

	store, err := database.OpenStore(ctx, cfg.Server.Database, serializer.New(registry, serializer.WithLogger(l)), l)
	if err != nil {
		return nil, nil, err
	}
	return store, registry, nil
}

func runServe(ctx context.Context, cfg *config.Config, withGraphQL bool) error {
	l := logger.NewDefaultLogger("RediJSON")
	l.SetLevel(logger.ParseLogLevel(cfg.Server.LogLevel))
	logger.SetGlobalLogger(l)

	store, registry, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := rest.NewServer(rest.ServerConfig{
		Store:    store,
		Registry: registry,
		Port:     cfg.Server.Port,
		Logger:   l,
		GraphQL:  withGraphQL,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
