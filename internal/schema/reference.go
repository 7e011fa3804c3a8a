package schema

import (
	"net/url"

	"github.com/go-openapi/spec"
)

// RefSchema builds a reference schema.
func RefSchema(ref string) *spec.Schema {
	return spec.RefSchema(ref)
}

// IsRefSchema determines whether a schema is a reference schema.
func IsRefSchema(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	return schema.Ref.GetURL() != nil
}

// RefOf returns the $ref string of a schema, or "".
func RefOf(schema *spec.Schema) string {
	if !IsRefSchema(schema) {
		return ""
	}
	ref := schema.Ref.String()
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	return ref
}

// RewriteRefs returns a copy of s with every nested $ref passed through fn.
func RewriteRefs(s *spec.Schema, fn func(string) string) (*spec.Schema, error) {
	raw, err := ToRaw(s)
	if err != nil {
		return nil, err
	}
	return FromRaw(RewriteRawRefs(raw, fn))
}

// RewriteRawRefs returns a deep copy of a generic JSON value with every
// "$ref" string passed through fn.
func RewriteRawRefs(v any, fn func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			if ref, ok := item.(string); ok && k == "$ref" {
				out[k] = fn(ref)
				continue
			}
			out[k] = RewriteRawRefs(item, fn)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = RewriteRawRefs(item, fn)
		}
		return out
	default:
		return v
	}
}
