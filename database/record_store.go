package database

import (
	"context"
	"strings"

	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/serializer"
)

// RecordStore loads records of registered models from a database
type RecordStore interface {
	// Find loads the record of model whose primary key equals id
	Find(ctx context.Context, model string, id any) (*serializer.Record, error)
	// FindByKey is Find with the primary key given as text
	FindByKey(ctx context.Context, model string, raw string) (*serializer.Record, error)
	// List loads up to limit records of model ordered by primary key
	List(ctx context.Context, model string, limit int) ([]*serializer.Record, error)
	Close() error
}

var (
	_ RecordStore = (*Store)(nil)
	_ RecordStore = (*MongoStore)(nil)
)

// OpenStore opens the database at uri and returns a store for it: a
// MongoStore for mongodb:// URIs and a SQL Store otherwise
func OpenStore(ctx context.Context, uri string, s *serializer.Serializer, l logger.Logger) (RecordStore, error) {
	if IsMongoURI(uri) {
		store, err := OpenMongo(ctx, uri, s, l)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	db, err := Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewStore(db, s, l), nil
}

// IsMongoURI reports whether uri names a MongoDB deployment
func IsMongoURI(uri string) bool {
	return strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://")
}
