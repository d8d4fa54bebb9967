package graphql

import (
	"context"
	"net/http"

	"github.com/graphql-go/handler"
	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/serializer"
)

// NewHandler serves the GraphQL schema of registry over HTTP. GET requests
// from browsers get GraphiQL.
func NewHandler(store database.RecordStore, registry *serializer.Registry, l logger.Logger) (http.Handler, error) {
	schema, err := NewSchemaGenerator(store, registry, l).Generate()
	if err != nil {
		return nil, err
	}

	return handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   true,
		GraphiQL: true,
		RootObjectFn: func(ctx context.Context, r *http.Request) map[string]any {
			return map[string]any{RequestKey: r}
		},
	}), nil
}
