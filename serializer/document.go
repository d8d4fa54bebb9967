package serializer

import (
	"bytes"
	"encoding/json"
)

// Document is the serialized form of a model instance. It keeps keys in
// insertion order so columns come out in table order.
type Document struct {
	keys   []string
	values map[string]any
}

func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Set stores a value. Overwriting a key keeps its original position.
func (d *Document) Set(key string, value any) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Document) Get(key string) (any, bool) {
	value, ok := d.values[key]
	return value, ok
}

func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns a copy of the keys in insertion order
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d *Document) Len() int {
	return len(d.keys)
}

// ToMap converts the document, and nested documents, into plain maps
func (d *Document) ToMap() map[string]any {
	if d == nil {
		return nil
	}
	result := make(map[string]any, len(d.keys))
	for _, key := range d.keys {
		result[key] = plain(d.values[key])
	}
	return result
}

func plain(v any) any {
	switch val := v.(type) {
	case *Document:
		if val == nil {
			return nil
		}
		return val.ToMap()
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = plain(item)
		}
		return items
	default:
		return v
	}
}

// MarshalJSON writes the document as a JSON object in key order
func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
