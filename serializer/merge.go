package serializer

import (
	"reflect"

	"github.com/stretchr/objx"
)

// Merge deep-merges option layers into a new map. Later layers take
// precedence. When both sides hold a mapping the two are merged recursively;
// any other value (scalars, slices) from a later layer replaces the earlier
// one. Inputs are never modified and nested maps and slices are copied, so the
// result can be changed freely.
//
// Any map keyed by strings counts as a mapping and comes out as an objx.Map.
func Merge(layers ...objx.Map) objx.Map {
	result := objx.Map{}
	for _, layer := range layers {
		mergeInto(result, layer)
	}
	return result
}

// mergeInto merges src into dst. dst must only hold maps created by copyValue.
func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := asMap(value); ok {
			if dstMap, ok := asMap(dst[key]); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
		}
		dst[key] = copyValue(value)
	}
}

// asMap returns v as a map[string]any. objx.Map and map[string]any come back
// as they are; other string keyed maps are converted into a new map.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case objx.Map:
		return m, true
	case map[string]any:
		return m, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	converted := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		converted[iter.Key().String()] = iter.Value().Interface()
	}
	return converted, true
}

// copyValue deep-copies v. Mappings become objx.Map; slices and maps with
// non-string keys keep their type.
func copyValue(v any) any {
	if m, ok := asMap(v); ok {
		copied := make(objx.Map, len(m))
		for k, item := range m {
			copied[k] = copyValue(item)
		}
		return copied
	}

	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return cloneValue(rv).Interface()
	}
	return v
}

// cloneValue copies slices, arrays and maps recursively. Pointers, channels
// and funcs are shared.
func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		return cloneValue(v.Elem())

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		copied := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			copied.Index(i).Set(cloneValue(v.Index(i)))
		}
		return copied

	case reflect.Array:
		copied := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			copied.Index(i).Set(cloneValue(v.Index(i)))
		}
		return copied

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		copied := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			copied.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return copied
	}
	return v
}
