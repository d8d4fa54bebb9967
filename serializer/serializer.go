package serializer

import (
	"github.com/rediwo/redi-json/logger"
	"github.com/stretchr/objx"
)

// Serializer walks models registered in a Registry
type Serializer struct {
	registry *Registry
	logger   logger.Logger
}

// Option configures a Serializer
type Option func(*Serializer)

// WithLogger sets the logger used for diagnostics. Without it the global
// logger is used.
func WithLogger(l logger.Logger) Option {
	return func(s *Serializer) {
		s.logger = l
	}
}

// New creates a serializer over registry; a nil registry means the default one
func New(registry *Registry, opts ...Option) *Serializer {
	if registry == nil {
		registry = defaultRegistry
	}
	s := &Serializer{registry: registry}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Serializer) Registry() *Registry {
	return s.registry
}

// Serialize renders m using its type-level options merged with options, or
// fresh defaults merged with options when options carries OverrideKey.
//
// Columns are written in table order. Enabled relationships follow: list
// relationships as a slice of nested documents (empty when nothing is
// related), single ones as a nested document or nil. Nested instances are
// serialized with the same request and the same options value that was passed
// in here. Relationship names the model does not declare are skipped.
func (s *Serializer) Serialize(m Model, request any, options objx.Map) (*Document, error) {
	t, err := s.registry.lookup(m.ModelName())
	if err != nil {
		return nil, err
	}

	effective, err := t.effectiveOptions(options)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	for _, column := range t.schema.ColumnNames() {
		if !effective.Emits(column) {
			continue
		}
		value, err := m.Attr(column)
		if err != nil {
			return nil, err
		}
		doc.Set(column, value)
	}

	for _, name := range effective.EnabledRelationships() {
		relation, ok := t.schema.Relations[name]
		if !ok {
			// Options are shared across the whole tree; the name most likely
			// belongs to another model type.
			logger.OrGlobal(s.logger).Debug("model %s has no relationship %s, skipping", t.schema.Name, name)
			continue
		}

		if relation.Type.IsList() {
			related, err := m.RelatedMany(name)
			if err != nil {
				return nil, err
			}
			items := make([]any, 0, len(related))
			for _, item := range related {
				nested, err := item.Serialize(request, options)
				if err != nil {
					return nil, err
				}
				items = append(items, nested)
			}
			doc.Set(name, items)
			continue
		}

		related, err := m.RelatedOne(name)
		if err != nil {
			return nil, err
		}
		if related == nil {
			doc.Set(name, nil)
			continue
		}
		nested, err := related.Serialize(request, options)
		if err != nil {
			return nil, err
		}
		doc.Set(name, nested)
	}

	return doc, nil
}

var defaultSerializer = New(nil)

// Serialize renders m with the default registry
func Serialize(m Model, request any, options objx.Map) (*Document, error) {
	return defaultSerializer.Serialize(m, request, options)
}
