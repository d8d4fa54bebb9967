package serializer

import (
	"fmt"
	"maps"

	"github.com/stretchr/objx"
)

// RelationLoader loads relationships of a Record on first access
type RelationLoader interface {
	LoadOne(r *Record, relation string) (Serializable, error)
	LoadMany(r *Record, relation string) ([]Serializable, error)
}

// Record is a generic model instance: column values keyed by column name plus
// related instances keyed by relationship name. Relationships that were never
// set are asked from the loader, when there is one, and cached. Without a
// loader they are empty.
//
// A Record is not safe for concurrent use.
type Record struct {
	model      string
	values     map[string]any
	one        map[string]Serializable
	many       map[string][]Serializable
	loader     RelationLoader
	serializer *Serializer
}

// NewRecord creates a record of model. values is copied.
func NewRecord(model string, values map[string]any) *Record {
	r := &Record{
		model:  model,
		values: make(map[string]any, len(values)),
		one:    make(map[string]Serializable),
		many:   make(map[string][]Serializable),
	}
	maps.Copy(r.values, values)
	return r
}

// WithSerializer binds the record to a serializer other than the default one
func (r *Record) WithSerializer(s *Serializer) *Record {
	r.serializer = s
	return r
}

func (r *Record) WithLoader(l RelationLoader) *Record {
	r.loader = l
	return r
}

func (r *Record) ModelName() string {
	return r.model
}

func (r *Record) Set(column string, value any) *Record {
	r.values[column] = value
	return r
}

// SetOne sets a single relationship; nil means nothing is related
func (r *Record) SetOne(relation string, related Serializable) *Record {
	if rec, ok := related.(*Record); ok && rec == nil {
		related = nil
	}
	r.one[relation] = related
	return r
}

// SetMany sets a list relationship
func (r *Record) SetMany(relation string, related ...Serializable) *Record {
	items := make([]Serializable, len(related))
	copy(items, related)
	r.many[relation] = items
	return r
}

// Attr returns the value of a column
func (r *Record) Attr(column string) (any, error) {
	value, ok := r.values[column]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, r.model, column)
	}
	return value, nil
}

// Values returns a copy of the column values
func (r *Record) Values() map[string]any {
	return maps.Clone(r.values)
}

func (r *Record) RelatedOne(relation string) (Serializable, error) {
	if related, ok := r.one[relation]; ok {
		return related, nil
	}
	if r.loader == nil {
		return nil, nil
	}

	related, err := r.loader.LoadOne(r, relation)
	if err != nil {
		return nil, err
	}
	r.SetOne(relation, related)
	return r.one[relation], nil
}

func (r *Record) RelatedMany(relation string) ([]Serializable, error) {
	if related, ok := r.many[relation]; ok {
		return related, nil
	}
	if r.loader == nil {
		return []Serializable{}, nil
	}

	related, err := r.loader.LoadMany(r, relation)
	if err != nil {
		return nil, err
	}
	r.SetMany(relation, related...)
	return r.many[relation], nil
}

// Serialize renders the record with its serializer
func (r *Record) Serialize(request any, options objx.Map) (*Document, error) {
	s := r.serializer
	if s == nil {
		s = defaultSerializer
	}
	return s.Serialize(r, request, options)
}
