package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/types"
	"github.com/rediwo/redi-json/serializer"
)

// Tool parameter structs
type ModelsParams struct{}

type FindUniqueParams struct {
	Model    string   `json:"model" jsonschema:"Model name"`
	ID       string   `json:"id" jsonschema:"Primary key"`
	Include  []string `json:"include,omitempty" jsonschema:"Relationships to include"`
	Exclude  []string `json:"exclude,omitempty" jsonschema:"Columns to exclude"`
	Only     []string `json:"only,omitempty" jsonschema:"Columns to keep, all others are excluded"`
	Override bool     `json:"override,omitempty" jsonschema:"Start from the model's defaults instead of its options"`
}

type FindManyParams struct {
	Model    string   `json:"model" jsonschema:"Model name"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum number of records"`
	Include  []string `json:"include,omitempty" jsonschema:"Relationships to include"`
	Exclude  []string `json:"exclude,omitempty" jsonschema:"Columns to exclude"`
	Only     []string `json:"only,omitempty" jsonschema:"Columns to keep, all others are excluded"`
	Override bool     `json:"override,omitempty" jsonschema:"Start from the model's defaults instead of its options"`
}

// addToolWithLogging wraps mcp.AddTool to add logging for registration and invocation
func addToolWithLogging[In, Out any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[In]) (*mcp.CallToolResultFor[Out], error)) {
	s.logger.Debug("Registering tool: %s - %s", tool.Name, tool.Description)

	wrappedHandler := func(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[In]) (*mcp.CallToolResultFor[Out], error) {
		startTime := time.Now()
		s.logger.Info("Tool invoked: %s", tool.Name)

		if s.logger.GetLevel() >= logger.LogLevelDebug {
			paramsJSON, _ := json.Marshal(params.Arguments)
			s.logger.Debug("  Parameters: %s", string(paramsJSON))
		}

		result, err := handler(ctx, session, params)

		duration := time.Since(startTime)
		if err != nil {
			s.logger.Error("Tool %s failed after %v: %v", tool.Name, duration, err)
		} else {
			s.logger.Info("Tool %s completed in %v", tool.Name, duration)
		}

		return result, err
	}

	mcp.AddTool[In, Out](s.mcpServer, tool, wrappedHandler)
}

// registerTools registers all MCP tools with the SDK server
func (s *Server) registerTools() error {
	modelsSchema, err := jsonschema.For[ModelsParams]()
	if err != nil {
		return err
	}
	findUniqueSchema, err := jsonschema.For[FindUniqueParams]()
	if err != nil {
		return err
	}
	findManySchema, err := jsonschema.For[FindManyParams]()
	if err != nil {
		return err
	}

	addToolWithLogging[ModelsParams, any](s, &mcp.Tool{
		Name:        "models",
		Description: "List the registered models",
		InputSchema: modelsSchema,
	}, s.handleModels)

	addToolWithLogging[FindUniqueParams, any](s, &mcp.Tool{
		Name:        "model.findUnique",
		Description: "Serialize a single record found by primary key",
		InputSchema: findUniqueSchema,
	}, s.handleFindUnique)

	addToolWithLogging[FindManyParams, any](s, &mcp.Tool{
		Name:        "model.findMany",
		Description: "Serialize records of a model ordered by primary key",
		InputSchema: findManySchema,
	}, s.handleFindMany)

	return nil
}

func (s *Server) handleModels(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ModelsParams]) (*mcp.CallToolResultFor[any], error) {
	return textResult(s.registry.Names())
}

func (s *Server) handleFindUnique(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FindUniqueParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.Model == "" || args.ID == "" {
		return nil, fmt.Errorf("model and id are required")
	}

	record, err := s.store.FindByKey(ctx, args.Model, args.ID)
	if err != nil {
		return nil, err
	}

	options := types.OptionArgs{
		Include:  args.Include,
		Exclude:  args.Exclude,
		Only:     args.Only,
		Override: args.Override,
	}.Params().Options

	doc, err := record.Serialize(nil, options)
	if err != nil {
		return nil, err
	}
	return textResult(doc)
}

func (s *Server) handleFindMany(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FindManyParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	query := types.OptionArgs{
		Include:  args.Include,
		Exclude:  args.Exclude,
		Only:     args.Only,
		Override: args.Override,
		Limit:    args.Limit,
	}.Params()
	records, err := s.store.List(ctx, args.Model, query.Limit)
	if err != nil {
		return nil, err
	}

	docs := make([]*serializer.Document, len(records))
	for i, record := range records {
		if docs[i], err = record.Serialize(nil, query.Options); err != nil {
			return nil, err
		}
	}
	return textResult(docs)
}

// textResult returns value as indented JSON text content
func textResult(value any) (*mcp.CallToolResultFor[any], error) {
	resultJSON, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(resultJSON)},
		},
	}, nil
}
