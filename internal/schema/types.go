// Package schema provides helpers over go-openapi spec.Schema fragments:
// conversion to and from generic JSON, cloning, deep merging and the
// small shape queries used by the descriptor model.
package schema

import (
	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
)

// Combinator names a variant keyword.
type Combinator string

const (
	OneOf Combinator = "oneOf"
	AnyOf Combinator = "anyOf"
	AllOf Combinator = "allOf"
)

// PrimitiveSchema builds a primitive schema.
func PrimitiveSchema(typeName string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{typeName}}}
}

// ObjectSchema builds an object schema with the given properties.
func ObjectSchema(properties map[string]spec.Schema, required []string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{
		Type:       []string{domain.OBJECT},
		Properties: properties,
		Required:   required,
	}}
}

// HasType reports whether the fragment declares typeName.
func HasType(s *spec.Schema, typeName string) bool {
	if s == nil {
		return false
	}
	return s.Type.Contains(typeName)
}

// IsNullable reports whether null is an allowed value: nullable: true,
// a "null" type entry or a null enum value.
func IsNullable(s *spec.Schema) bool {
	if s == nil {
		return false
	}
	if s.Nullable || HasType(s, domain.NULL) {
		return true
	}
	for _, v := range s.Enum {
		if v == nil {
			return true
		}
	}
	return false
}

// NonNullTypes returns the declared types without "null".
func NonNullTypes(s *spec.Schema) []string {
	var out []string
	for _, t := range s.Type {
		if t != domain.NULL {
			out = append(out, t)
		}
	}
	return out
}

// CombinatorOf returns the variant keyword present on s and its members.
// oneOf takes precedence over anyOf, which takes precedence over allOf.
func CombinatorOf(s *spec.Schema) (Combinator, []spec.Schema, bool) {
	switch {
	case s == nil:
		return "", nil, false
	case len(s.OneOf) > 0:
		return OneOf, s.OneOf, true
	case len(s.AnyOf) > 0:
		return AnyOf, s.AnyOf, true
	case len(s.AllOf) > 0:
		return AllOf, s.AllOf, true
	}
	return "", nil, false
}

// CommonPart returns a shallow copy of s without any combinator keyword.
func CommonPart(s *spec.Schema) *spec.Schema {
	c := *s
	c.OneOf = nil
	c.AnyOf = nil
	c.AllOf = nil
	return &c
}

// HasStructure reports whether s constrains the shape of a value, as opposed
// to carrying only annotations like title or description.
func HasStructure(s *spec.Schema) bool {
	if s == nil {
		return false
	}
	return len(s.Type) > 0 || s.Format != "" || s.Nullable ||
		len(s.Properties) > 0 || len(s.PatternProperties) > 0 || len(s.Required) > 0 ||
		s.Items != nil || len(s.Enum) > 0 || s.AdditionalProperties != nil || s.Not != nil ||
		s.Maximum != nil || s.Minimum != nil || s.MultipleOf != nil ||
		s.MaxLength != nil || s.MinLength != nil || s.Pattern != "" ||
		s.MaxItems != nil || s.MinItems != nil || s.UniqueItems ||
		s.MaxProperties != nil || s.MinProperties != nil
}

// Items returns the item fragments of an array schema.
func Items(s *spec.Schema) []spec.Schema {
	if s == nil || s.Items == nil {
		return nil
	}
	if s.Items.Schema != nil {
		return []spec.Schema{*s.Items.Schema}
	}
	return s.Items.Schemas
}

// Deprecated reports whether the fragment is marked deprecated.
func Deprecated(s *spec.Schema) bool {
	v, ok := s.ExtraProps["deprecated"].(bool)
	return ok && v
}

// ExtraString returns a string-valued extra or extension property.
func ExtraString(s *spec.Schema, key string) string {
	if v, ok := s.ExtraProps[key].(string); ok {
		return v
	}
	if v, ok := s.Extensions[key].(string); ok {
		return v
	}
	return ""
}
