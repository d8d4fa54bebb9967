package schema

import (
	"fmt"
	"strings"

	"github.com/rediwo/redi-json/utils"
)

type RelationType string

const (
	RelationOneToOne   RelationType = "oneToOne"
	RelationOneToMany  RelationType = "oneToMany"
	RelationManyToOne  RelationType = "manyToOne"
	RelationManyToMany RelationType = "manyToMany"
)

// IsList reports whether the relation resolves to a list of related records
// rather than to at most one
func (t RelationType) IsList() bool {
	return t == RelationOneToMany || t == RelationManyToMany
}

// Valid reports whether t is a known relation type
func (t RelationType) Valid() bool {
	switch t {
	case RelationOneToOne, RelationOneToMany, RelationManyToOne, RelationManyToMany:
		return true
	}
	return false
}

// Relation is a named association to another model.
//
// ForeignKey and References are field names. For many-to-many relations they
// name the junction table columns pointing at the current and the related model.
type Relation struct {
	Type       RelationType
	Model      string
	ForeignKey string
	References string
	Through    string // junction table for many-to-many relations
}

// Lookup tells a store how to fetch the records of a relation for one owner.
// Rows of Table where Column equals the owner's SourceColumn value are related.
// For many-to-many relations the match goes through ThroughTable instead:
// ThroughSource holds the owner's SourceColumn value and ThroughTarget the
// related row's Column value.
type Lookup struct {
	Table        string
	Column       string
	SourceColumn string

	ThroughTable  string
	ThroughSource string
	ThroughTarget string
}

// GetJunctionTableName generates a junction table name for many-to-many relations
func GetJunctionTableName(modelA, modelB string) string {
	if modelA == modelB {
		table := ModelNameToTableName(modelA)
		return utils.Singularize(table) + "_" + table
	}

	first, second := modelA, modelB
	if strings.ToLower(modelA) > strings.ToLower(modelB) {
		first, second = modelB, modelA
	}

	return utils.Singularize(ModelNameToTableName(first)) + "_" + ModelNameToTableName(second)
}

// ValidateRelation checks that the fields a relation depends on exist and
// fills in defaulted keys
func ValidateRelation(relation *Relation, currentModel, relatedModel *Schema) error {
	if relatedModel == nil {
		return fmt.Errorf("related model %s not found", relation.Model)
	}
	if !relation.Type.Valid() {
		return fmt.Errorf("unknown relation type: %s", relation.Type)
	}

	switch relation.Type {
	case RelationManyToOne:
		if _, err := currentModel.GetField(relation.ForeignKey); err != nil {
			return fmt.Errorf("foreign key field %s not found in model %s", relation.ForeignKey, currentModel.Name)
		}
		if err := defaultToPrimaryKey(&relation.References, relatedModel); err != nil {
			return err
		}
		if _, err := relatedModel.GetField(relation.References); err != nil {
			return fmt.Errorf("references field %s not found in model %s", relation.References, relatedModel.Name)
		}

	case RelationOneToMany:
		if relation.ForeignKey == "" {
			relation.ForeignKey = strings.ToLower(currentModel.Name[:1]) + currentModel.Name[1:] + "Id"
		}
		if _, err := relatedModel.GetField(relation.ForeignKey); err != nil {
			return fmt.Errorf("foreign key field %s not found in model %s", relation.ForeignKey, relatedModel.Name)
		}
		if err := defaultToPrimaryKey(&relation.References, currentModel); err != nil {
			return err
		}
		if _, err := currentModel.GetField(relation.References); err != nil {
			return fmt.Errorf("references field %s not found in model %s", relation.References, currentModel.Name)
		}

	case RelationOneToOne:
		_, errCurrent := currentModel.GetField(relation.ForeignKey)
		_, errRelated := relatedModel.GetField(relation.ForeignKey)
		if errCurrent != nil && errRelated != nil {
			return fmt.Errorf("foreign key field %s not found in either model", relation.ForeignKey)
		}
		owner := relatedModel
		if errCurrent != nil {
			owner = currentModel
		}
		if err := defaultToPrimaryKey(&relation.References, owner); err != nil {
			return err
		}
		if _, err := owner.GetField(relation.References); err != nil {
			return fmt.Errorf("references field %s not found in model %s", relation.References, owner.Name)
		}

	case RelationManyToMany:
		if relation.Through == "" {
			relation.Through = GetJunctionTableName(currentModel.Name, relatedModel.Name)
		}
		if relation.ForeignKey == "" {
			relation.ForeignKey = utils.ToSnakeCase(currentModel.Name) + "_id"
		}
		if relation.References == "" {
			relation.References = utils.ToSnakeCase(relatedModel.Name) + "_id"
		}
		if relation.ForeignKey == relation.References {
			return fmt.Errorf("junction columns of %s must differ", relation.Through)
		}
	}

	return nil
}

func defaultToPrimaryKey(name *string, s *Schema) error {
	if *name != "" {
		return nil
	}
	pk, err := s.GetPrimaryKey()
	if err != nil {
		return err
	}
	*name = pk.Name
	return nil
}

// BuildLookup resolves a validated relation into the tables and columns a
// store queries to load it
func BuildLookup(relation *Relation, currentSchema, relatedSchema *Schema) (Lookup, error) {
	switch relation.Type {
	case RelationManyToOne:
		return keyLookup(relatedSchema, relation.References, currentSchema, relation.ForeignKey)

	case RelationOneToMany:
		return keyLookup(relatedSchema, relation.ForeignKey, currentSchema, relation.References)

	case RelationOneToOne:
		if _, err := currentSchema.GetField(relation.ForeignKey); err == nil {
			return keyLookup(relatedSchema, relation.References, currentSchema, relation.ForeignKey)
		}
		return keyLookup(relatedSchema, relation.ForeignKey, currentSchema, relation.References)

	case RelationManyToMany:
		currentPK, err := currentSchema.GetPrimaryKey()
		if err != nil {
			return Lookup{}, err
		}
		relatedPK, err := relatedSchema.GetPrimaryKey()
		if err != nil {
			return Lookup{}, err
		}
		return Lookup{
			Table:         relatedSchema.TableName,
			Column:        relatedPK.GetColumnName(),
			SourceColumn:  currentPK.GetColumnName(),
			ThroughTable:  relation.Through,
			ThroughSource: relation.ForeignKey,
			ThroughTarget: relation.References,
		}, nil

	default:
		return Lookup{}, fmt.Errorf("unknown relation type: %s", relation.Type)
	}
}

func keyLookup(relatedSchema *Schema, relatedField string, currentSchema *Schema, currentField string) (Lookup, error) {
	column, err := relatedSchema.GetColumnNameByFieldName(relatedField)
	if err != nil {
		return Lookup{}, err
	}
	source, err := currentSchema.GetColumnNameByFieldName(currentField)
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{
		Table:        relatedSchema.TableName,
		Column:       column,
		SourceColumn: source,
	}, nil
}
