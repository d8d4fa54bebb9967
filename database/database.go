// Package database opens SQL databases from URIs and loads model records
// from them.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported database type")
	ErrNotFound          = errors.New("record not found")
	ErrInvalidKey        = errors.New("invalid primary key")
)

// DB is an open database together with its dialect
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open parses uri, opens the database and checks the connection
func Open(ctx context.Context, uri string) (*DB, error) {
	cfg, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to a private in-memory SQLite database sees its own
	// empty database.
	if cfg.Dialect == DialectSQLite && cfg.DSN == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{DB: db, Dialect: cfg.Dialect}, nil
}
