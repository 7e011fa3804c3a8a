package schema

import (
	"reflect"

	"github.com/go-openapi/spec"
)

// DeepMerge merges src into a copy of dst. Nested objects are merged key by
// key, arrays are unioned preserving order, and any other src value replaces
// the dst value. Neither argument is modified.
//
// The merge is structural only: conflicting primitive types are kept side
// by side (see ConflictingTypes).
func DeepMerge(dst, src map[string]any) map[string]any {
	out := deepCopyMap(dst)
	for k, sv := range src {
		dv, exists := out[k]
		if !exists {
			out[k] = deepCopy(sv)
			continue
		}
		switch s := sv.(type) {
		case map[string]any:
			if d, ok := dv.(map[string]any); ok {
				out[k] = DeepMerge(d, s)
				continue
			}
		case []any:
			if d, ok := dv.([]any); ok {
				out[k] = union(d, s)
				continue
			}
		}
		out[k] = deepCopy(sv)
	}
	return out
}

// Merge deep-merges fragments left to right into one new fragment.
func Merge(fragments ...*spec.Schema) (*spec.Schema, error) {
	acc := map[string]any{}
	for _, f := range fragments {
		if f == nil {
			continue
		}
		raw, err := ToRaw(f)
		if err != nil {
			return nil, err
		}
		acc = DeepMerge(acc, raw)
	}
	return FromRaw(acc)
}

// Subsumes reports whether merging extra into s leaves s unchanged, that is
// extra adds no constraint s does not already carry.
func Subsumes(s, extra *spec.Schema) (bool, error) {
	merged, err := Merge(extra, s)
	if err != nil {
		return false, err
	}
	want, err := ToRaw(s)
	if err != nil {
		return false, err
	}
	got, err := ToRaw(merged)
	if err != nil {
		return false, err
	}
	return reflect.DeepEqual(want, got), nil
}

// ConflictingTypes reports whether the fragments declare more than one
// distinct non-null primitive type between them.
func ConflictingTypes(fragments ...*spec.Schema) bool {
	seen := map[string]bool{}
	for _, f := range fragments {
		if f == nil {
			continue
		}
		for _, t := range NonNullTypes(f) {
			seen[t] = true
		}
	}
	if seen["integer"] && seen["number"] {
		delete(seen, "integer")
	}
	return len(seen) > 1
}

func union(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	for _, v := range a {
		out = append(out, deepCopy(v))
	}
	for _, v := range b {
		found := false
		for _, existing := range out {
			if reflect.DeepEqual(existing, v) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, deepCopy(v))
		}
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}
