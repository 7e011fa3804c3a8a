package schema

import (
	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"
)

// FromRaw decodes a generic JSON value into a fragment.
func FromRaw(v any) (*spec.Schema, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var s spec.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ToRaw encodes a fragment as a generic JSON object.
func ToRaw(s *spec.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clone returns a deep copy of s.
func Clone(s *spec.Schema) (*spec.Schema, error) {
	raw, err := ToRaw(s)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// Compact renders s as single-line JSON for error messages.
func Compact(s *spec.Schema) string {
	if s == nil {
		return "null"
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "<unprintable fragment>"
	}
	return string(data)
}

// CompactRaw renders a generic JSON value on one line.
func CompactRaw(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unprintable fragment>"
	}
	return string(data)
}
