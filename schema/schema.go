package schema

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/rediwo/redi-json/utils"
)

type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInt      FieldType = "int"
	FieldTypeInt64    FieldType = "int64"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBool     FieldType = "bool"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeJSON     FieldType = "json"
	FieldTypeDecimal  FieldType = "decimal"
)

// Valid reports whether t is one of the known field types
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeInt, FieldTypeInt64, FieldTypeFloat,
		FieldTypeBool, FieldTypeDateTime, FieldTypeJSON, FieldTypeDecimal:
		return true
	}
	return false
}

// Field is a scalar column of a model
type Field struct {
	Name       string
	Type       FieldType
	PrimaryKey bool
	Nullable   bool
	Map        string // Column name mapping (@map("column_name"))
}

// GetColumnName returns the actual database column name for this field
func (f Field) GetColumnName() string {
	if f.Map != "" {
		return f.Map
	}
	return utils.ToSnakeCase(f.Name)
}

// Schema describes a mapped model: its table, its ordered columns and its
// named relations
type Schema struct {
	Name      string
	TableName string
	Fields    []Field
	Relations map[string]Relation
}

func New(name string) *Schema {
	return &Schema{
		Name:      name,
		TableName: ModelNameToTableName(name),
		Fields:    []Field{},
		Relations: make(map[string]Relation),
	}
}

// ModelNameToTableName converts model name to default table name (pluralized, snake_case)
func ModelNameToTableName(modelName string) string {
	return utils.Pluralize(utils.ToSnakeCase(modelName))
}

func (s *Schema) WithTableName(name string) *Schema {
	s.TableName = name
	return s
}

func (s *Schema) AddField(field Field) *Schema {
	s.Fields = append(s.Fields, field)
	return s
}

func (s *Schema) AddRelation(name string, relation Relation) *Schema {
	s.Relations[name] = relation
	return s
}

// Clone returns a copy of s that shares no fields or relations with it
func (s *Schema) Clone() *Schema {
	clone := *s
	clone.Fields = slices.Clone(s.Fields)
	clone.Relations = maps.Clone(s.Relations)
	if clone.Relations == nil {
		clone.Relations = make(map[string]Relation)
	}
	return &clone
}

func (s *Schema) GetField(name string) (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("field %s not found", name)
}

// GetFieldByColumnName returns a field by its database column name
func (s *Schema) GetFieldByColumnName(columnName string) (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].GetColumnName() == columnName {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("field with column name %s not found", columnName)
}

// GetColumnNameByFieldName returns the database column name for a given schema field name
func (s *Schema) GetColumnNameByFieldName(fieldName string) (string, error) {
	field, err := s.GetField(fieldName)
	if err != nil {
		return "", err
	}
	return field.GetColumnName(), nil
}

func (s *Schema) GetPrimaryKey() (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].PrimaryKey {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("no primary key found in model %s", s.Name)
}

// ColumnNames returns the column names in declaration order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		names[i] = field.GetColumnName()
	}
	return names
}

// RelationNames returns the relation names sorted alphabetically
func (s *Schema) RelationNames() []string {
	names := make([]string, 0, len(s.Relations))
	for name := range s.Relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasRelation checks if a relation exists
func (s *Schema) HasRelation(relationName string) bool {
	_, exists := s.Relations[relationName]
	return exists
}

// GetRelation returns a relation by name
func (s *Schema) GetRelation(relationName string) (Relation, error) {
	relation, exists := s.Relations[relationName]
	if !exists {
		return Relation{}, fmt.Errorf("relation %s not found", relationName)
	}
	return relation, nil
}

func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	if s.TableName == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %s must have at least one field", s.Name)
	}

	seen := make(map[string]bool, len(s.Fields))
	primaryKeys := 0
	for _, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("schema %s has a field without a name", s.Name)
		}
		column := field.GetColumnName()
		if seen[column] {
			return fmt.Errorf("schema %s declares column %s twice", s.Name, column)
		}
		seen[column] = true
		if field.Type != "" && !field.Type.Valid() {
			return fmt.Errorf("field %s has unknown type %s", field.Name, field.Type)
		}
		if field.PrimaryKey {
			primaryKeys++
		}
	}

	if primaryKeys != 1 {
		return fmt.Errorf("schema %s must have exactly one primary key, found %d", s.Name, primaryKeys)
	}

	for name := range s.Relations {
		if seen[name] {
			return fmt.Errorf("relation %s collides with a column of the same name", name)
		}
	}

	return nil
}

// ValidateRelations validates all relations in the schema against the known schemas
func (s *Schema) ValidateRelations(schemas map[string]*Schema) error {
	for _, name := range s.RelationNames() {
		relation := s.Relations[name]
		relatedSchema, exists := schemas[relation.Model]
		if !exists {
			return fmt.Errorf("relation %s references unknown model %s", name, relation.Model)
		}

		if err := ValidateRelation(&relation, s, relatedSchema); err != nil {
			return fmt.Errorf("invalid relation %s: %w", name, err)
		}
		s.Relations[name] = relation
	}
	return nil
}
