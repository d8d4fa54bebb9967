// Package graphql exposes registered models through a read-only GraphQL
// schema. Every model gets a findUnique and a findMany query field returning
// serialized documents.
package graphql

import (
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/types"
	"github.com/rediwo/redi-json/serializer"
	"github.com/rediwo/redi-json/utils"
)

// RequestKey is the root value entry holding the *http.Request of a query
const RequestKey = "request"

// SchemaGenerator generates the GraphQL schema of a registry
type SchemaGenerator struct {
	store    database.RecordStore
	registry *serializer.Registry
	logger   logger.Logger
}

// NewSchemaGenerator creates a new schema generator
func NewSchemaGenerator(store database.RecordStore, registry *serializer.Registry, l logger.Logger) *SchemaGenerator {
	return &SchemaGenerator{
		store:    store,
		registry: registry,
		logger:   logger.OrGlobal(l),
	}
}

// Generate creates the complete GraphQL schema
func (g *SchemaGenerator) Generate() (*graphql.Schema, error) {
	queryFields := graphql.Fields{
		"models": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Description: "Names of the registered models",
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return g.registry.Names(), nil
			},
		},
	}

	for _, modelName := range g.registry.Names() {
		findUniqueArgs := optionArgs()
		findUniqueArgs["id"] = &graphql.ArgumentConfig{
			Type:        graphql.NewNonNull(graphql.ID),
			Description: "Primary key",
		}
		queryFields[fmt.Sprintf("findUnique%s", modelName)] = &graphql.Field{
			Type:        JSON,
			Description: fmt.Sprintf("Find a single %s by primary key", modelName),
			Args:        findUniqueArgs,
			Resolve:     g.findUniqueResolver(modelName),
		}

		findManyArgs := optionArgs()
		findManyArgs["limit"] = &graphql.ArgumentConfig{
			Type:        graphql.Int,
			Description: "Maximum number of records",
		}
		queryFields[fmt.Sprintf("findMany%s", modelName)] = &graphql.Field{
			Type:        graphql.NewList(JSON),
			Description: fmt.Sprintf("List %s records ordered by primary key", modelName),
			Args:        findManyArgs,
			Resolve:     g.findManyResolver(modelName),
		}
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
	if err != nil {
		return nil, err
	}

	return &schema, nil
}

func (g *SchemaGenerator) findUniqueResolver(modelName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		params, err := queryParams(p.Args)
		if err != nil {
			return nil, err
		}

		id, _ := p.Args["id"].(string)
		record, err := g.store.FindByKey(p.Context, modelName, id)
		if err != nil {
			g.logger.Debug("findUnique%s(%s) failed: %v", modelName, id, err)
			return nil, err
		}
		return record.Serialize(requestOf(p), params.Options)
	}
}

func (g *SchemaGenerator) findManyResolver(modelName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		params, err := queryParams(p.Args)
		if err != nil {
			return nil, err
		}

		records, err := g.store.List(p.Context, modelName, params.Limit)
		if err != nil {
			return nil, err
		}

		request := requestOf(p)
		docs := make([]*serializer.Document, len(records))
		for i, record := range records {
			if docs[i], err = record.Serialize(request, params.Options); err != nil {
				return nil, err
			}
		}
		return docs, nil
	}
}

// queryParams reads the option arguments of a query field
func queryParams(args map[string]any) (*types.QueryParams, error) {
	var opts types.OptionArgs
	for key, target := range map[string]*[]string{"include": &opts.Include, "exclude": &opts.Exclude, "only": &opts.Only} {
		raw, ok := args[key]
		if !ok {
			continue
		}
		list, err := utils.ToStringSlice(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", key, err)
		}
		*target = list
	}
	opts.Override, _ = args["override"].(bool)
	opts.Limit, _ = args["limit"].(int)
	return opts.Params(), nil
}

// requestOf returns the HTTP request a query arrived with, or nil when the
// schema is executed directly
func requestOf(p graphql.ResolveParams) any {
	root, ok := p.Info.RootValue.(map[string]any)
	if !ok {
		return nil
	}
	if r, ok := root[RequestKey].(*http.Request); ok {
		return r
	}
	return nil
}
