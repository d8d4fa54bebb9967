package serializer

import (
	"fmt"
	"slices"
	"sort"

	"github.com/rediwo/redi-json/schema"
	"github.com/rediwo/redi-json/utils"
	"github.com/stretchr/objx"
)

// Keys understood in option maps.
const (
	KeyRelationships = "relationships"
	KeyExcludeAttrs  = "exclude_attrs"
	KeyIncludeAttrs  = "include_attrs"

	// OverrideKey marks call options that merge over fresh defaults rather
	// than over the type-level options. Only its presence matters.
	OverrideKey = "_override"

	// Wildcard in exclude_attrs excludes every column.
	Wildcard = "*"
)

// Options is the decoded form of an options map
type Options struct {
	Relationships map[string]bool
	ExcludeAttrs  []string
	IncludeAttrs  []string
}

// DefaultOptions derives the baseline options for a model: every relation
// disabled, nothing excluded or included. A new map is built on every call.
func DefaultOptions(s *schema.Schema) objx.Map {
	relationships := make(objx.Map, len(s.Relations))
	for name := range s.Relations {
		relationships[name] = false
	}

	return objx.Map{
		KeyRelationships: relationships,
		KeyExcludeAttrs:  []string{},
		KeyIncludeAttrs:  []string{},
	}
}

// DecodeOptions reads an options map. Unknown keys are ignored. A relationship
// counts as enabled only when its value is the boolean true.
func DecodeOptions(m objx.Map) (Options, error) {
	opts := Options{Relationships: map[string]bool{}}

	if raw, ok := m[KeyRelationships]; ok && raw != nil {
		relationships, ok := asMap(raw)
		if !ok {
			return Options{}, fmt.Errorf("%w: %s must be a mapping, got %T", ErrMalformedOptions, KeyRelationships, raw)
		}
		for name, value := range relationships {
			enabled, _ := value.(bool)
			opts.Relationships[name] = enabled
		}
	}

	var err error
	if opts.ExcludeAttrs, err = utils.ToStringSlice(m[KeyExcludeAttrs]); err != nil {
		return Options{}, fmt.Errorf("%w: %s: %v", ErrMalformedOptions, KeyExcludeAttrs, err)
	}
	if opts.IncludeAttrs, err = utils.ToStringSlice(m[KeyIncludeAttrs]); err != nil {
		return Options{}, fmt.Errorf("%w: %s: %v", ErrMalformedOptions, KeyIncludeAttrs, err)
	}

	return opts, nil
}

// Map encodes the options back into an options map
func (o Options) Map() objx.Map {
	relationships := make(objx.Map, len(o.Relationships))
	for name, enabled := range o.Relationships {
		relationships[name] = enabled
	}
	return objx.Map{
		KeyRelationships: relationships,
		KeyExcludeAttrs:  slices.Clone(o.ExcludeAttrs),
		KeyIncludeAttrs:  slices.Clone(o.IncludeAttrs),
	}
}

// Emits reports whether a column is written: it is written unless it is
// excluded (by name or by the wildcard) and not explicitly included.
func (o Options) Emits(column string) bool {
	if slices.Contains(o.IncludeAttrs, column) {
		return true
	}
	return !slices.Contains(o.ExcludeAttrs, Wildcard) && !slices.Contains(o.ExcludeAttrs, column)
}

// EnabledRelationships returns the names of enabled relationships, sorted
func (o Options) EnabledRelationships() []string {
	names := make([]string, 0, len(o.Relationships))
	for name, enabled := range o.Relationships {
		if enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
