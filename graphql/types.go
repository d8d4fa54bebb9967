package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// JSON is a scalar holding a serialized model document. Documents keep their
// key order when the response is encoded.
var JSON = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "JSON scalar type represents a serialized record",
	Serialize: func(value any) any {
		return value
	},
	ParseValue: func(value any) any {
		return value
	},
	ParseLiteral: func(valueAST ast.Value) any {
		if stringValue, ok := valueAST.(*ast.StringValue); ok {
			return stringValue.Value
		}
		return nil
	},
})

// optionArgs are the serialization arguments every query field accepts
func optionArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"include": &graphql.ArgumentConfig{
			Type:        graphql.NewList(graphql.String),
			Description: "Relationships to include",
		},
		"exclude": &graphql.ArgumentConfig{
			Type:        graphql.NewList(graphql.String),
			Description: "Columns to exclude",
		},
		"only": &graphql.ArgumentConfig{
			Type:        graphql.NewList(graphql.String),
			Description: "Columns to keep",
		},
		"override": &graphql.ArgumentConfig{
			Type:        graphql.Boolean,
			Description: "Start from the model's defaults instead of its options",
		},
	}
}
