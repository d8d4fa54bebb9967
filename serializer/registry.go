package serializer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rediwo/redi-json/schema"
	"github.com/stretchr/objx"
)

type modelType struct {
	schema  *schema.Schema
	options objx.Map // defaults merged with the override, computed at registration
}

// Registry maps model names to their schema and type-level options
type Registry struct {
	mu    sync.RWMutex
	types map[string]*modelType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*modelType)}
}

// Register validates the schema and computes its type-level options by
// merging override over DefaultOptions. Call it once the schema's relations
// are final and before the first serialization. Registering the same name
// again replaces the entry. The registry keeps its own copy of s, so later
// changes to s are not seen until s is registered again.
func (r *Registry) Register(s *schema.Schema, override objx.Map) error {
	if s == nil {
		return fmt.Errorf("cannot register nil schema")
	}
	s = s.Clone()
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schema %s: %w", s.Name, err)
	}

	options := Merge(DefaultOptions(s), override)
	if _, err := DecodeOptions(options); err != nil {
		return fmt.Errorf("model %s: %w", s.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[s.Name] = &modelType{schema: s, options: options}
	return nil
}

func (r *Registry) lookup(name string) (*modelType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotRegistered, name)
	}
	return t, nil
}

// Schema returns the registered schema of a model. It is shared and must not
// be modified.
func (r *Registry) Schema(name string) (*schema.Schema, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return t.schema, nil
}

// Options returns the type-level options of a model. The returned map is a copy.
func (r *Registry) Options(name string) (objx.Map, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return Merge(t.options), nil
}

// Names returns the registered model names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas returns the registered schemas keyed by model name
func (r *Registry) Schemas() map[string]*schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make(map[string]*schema.Schema, len(r.types))
	for name, t := range r.types {
		schemas[name] = t.schema
	}
	return schemas
}

// EffectiveOptions computes the options one call to Serialize would use for
// the model. The OverrideKey marker is not part of the result.
func (r *Registry) EffectiveOptions(name string, options objx.Map) (Options, error) {
	t, err := r.lookup(name)
	if err != nil {
		return Options{}, err
	}
	return t.effectiveOptions(options)
}

func (t *modelType) effectiveOptions(options objx.Map) (Options, error) {
	var merged objx.Map
	if _, full := options[OverrideKey]; full {
		merged = Merge(objx.Map{}, DefaultOptions(t.schema), options)
	} else {
		merged = Merge(objx.Map{}, t.options, options)
	}
	delete(merged, OverrideKey)
	return DecodeOptions(merged)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Register and Serialize
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register registers a model on the default registry
func Register(s *schema.Schema, override objx.Map) error {
	return defaultRegistry.Register(s, override)
}
