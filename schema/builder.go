package schema

// FieldBuilder builds a Field fluently:
//
//	schema.NewField("email").String().Unique().Build()
type FieldBuilder struct {
	field Field
}

func NewField(name string) *FieldBuilder {
	return &FieldBuilder{
		field: Field{
			Name: name,
			Type: FieldTypeString,
		},
	}
}

func (fb *FieldBuilder) Type(t FieldType) *FieldBuilder {
	fb.field.Type = t
	return fb
}

func (fb *FieldBuilder) String() *FieldBuilder   { return fb.Type(FieldTypeString) }
func (fb *FieldBuilder) Int() *FieldBuilder      { return fb.Type(FieldTypeInt) }
func (fb *FieldBuilder) Int64() *FieldBuilder    { return fb.Type(FieldTypeInt64) }
func (fb *FieldBuilder) Float() *FieldBuilder    { return fb.Type(FieldTypeFloat) }
func (fb *FieldBuilder) Bool() *FieldBuilder     { return fb.Type(FieldTypeBool) }
func (fb *FieldBuilder) DateTime() *FieldBuilder { return fb.Type(FieldTypeDateTime) }
func (fb *FieldBuilder) JSON() *FieldBuilder     { return fb.Type(FieldTypeJSON) }

func (fb *FieldBuilder) PrimaryKey() *FieldBuilder {
	fb.field.PrimaryKey = true
	fb.field.Nullable = false
	return fb
}

func (fb *FieldBuilder) Nullable() *FieldBuilder {
	fb.field.Nullable = true
	return fb
}

func (fb *FieldBuilder) Map(columnName string) *FieldBuilder {
	fb.field.Map = columnName
	return fb
}

func (fb *FieldBuilder) Build() Field {
	return fb.field
}

// RelationBuilder builds a Relation fluently
type RelationBuilder struct {
	relation Relation
}

func NewRelation(relationType RelationType, model string) *RelationBuilder {
	return &RelationBuilder{relation: Relation{Type: relationType, Model: model}}
}

func (rb *RelationBuilder) ForeignKey(field string) *RelationBuilder {
	rb.relation.ForeignKey = field
	return rb
}

func (rb *RelationBuilder) References(field string) *RelationBuilder {
	rb.relation.References = field
	return rb
}

func (rb *RelationBuilder) Through(table string) *RelationBuilder {
	rb.relation.Through = table
	return rb
}

func (rb *RelationBuilder) Build() Relation {
	return rb.relation
}
