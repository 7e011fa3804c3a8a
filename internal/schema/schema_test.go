package schema

import (
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFromRaw(t *testing.T, v any) *spec.Schema {
	t.Helper()
	s, err := FromRaw(v)
	require.NoError(t, err)
	return s
}

func TestFromRaw(t *testing.T) {
	s := mustFromRaw(t, map[string]any{
		"type":        "object",
		"description": "A widget",
		"properties": map[string]any{
			"id": map[string]any{"type": "integer"},
		},
		"required":      []any{"id"},
		"deprecated":    true,
		"x-typegen-tag": "v",
	})

	assert.True(t, HasType(s, "object"))
	assert.Equal(t, "A widget", s.Description)
	assert.Contains(t, s.Properties, "id")
	assert.Equal(t, []string{"id"}, s.Required)
	assert.True(t, Deprecated(s))
	assert.Equal(t, "v", ExtraString(s, "x-typegen-tag"))
}

func TestReferences(t *testing.T) {
	t.Run("ref schema", func(t *testing.T) {
		s := mustFromRaw(t, map[string]any{"$ref": "#/components/schemas/Widget"})
		assert.True(t, IsRefSchema(s))
		assert.Equal(t, "#/components/schemas/Widget", RefOf(s))
	})

	t.Run("plain schema", func(t *testing.T) {
		assert.False(t, IsRefSchema(PrimitiveSchema("string")))
		assert.Equal(t, "", RefOf(PrimitiveSchema("string")))
		assert.False(t, IsRefSchema(nil))
	})

	t.Run("built ref schema", func(t *testing.T) {
		assert.Equal(t, "#/components/schemas/Todo", RefOf(RefSchema("#/components/schemas/Todo")))
	})
}

func TestNullable(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want bool
	}{
		{"nullable flag", map[string]any{"type": "string", "nullable": true}, true},
		{"null in type list", map[string]any{"type": []any{"string", "null"}}, true},
		{"null enum value", map[string]any{"enum": []any{"a", nil}}, true},
		{"plain", map[string]any{"type": "string"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNullable(mustFromRaw(t, tt.raw)))
		})
	}
}

func TestCombinatorOf(t *testing.T) {
	s := mustFromRaw(t, map[string]any{
		"type":  "object",
		"oneOf": []any{map[string]any{"type": "string"}},
		"allOf": []any{map[string]any{"type": "number"}},
	})

	kind, members, ok := CombinatorOf(s)
	require.True(t, ok)
	assert.Equal(t, OneOf, kind)
	assert.Len(t, members, 1)

	common := CommonPart(s)
	assert.Empty(t, common.OneOf)
	assert.Empty(t, common.AllOf)
	assert.True(t, HasType(common, "object"))
	assert.NotEmpty(t, s.OneOf, "source fragment is left untouched")

	_, _, ok = CombinatorOf(PrimitiveSchema("string"))
	assert.False(t, ok)
}

func TestDeepMerge(t *testing.T) {
	t.Run("merges nested objects and unions arrays", func(t *testing.T) {
		dst := map[string]any{
			"type":       "object",
			"properties": map[string]any{"a": map[string]any{"type": "string"}},
			"required":   []any{"a"},
		}
		src := map[string]any{
			"properties": map[string]any{"b": map[string]any{"type": "number"}},
			"required":   []any{"a", "b"},
		}

		out := DeepMerge(dst, src)

		props := out["properties"].(map[string]any)
		assert.Contains(t, props, "a")
		assert.Contains(t, props, "b")
		assert.Equal(t, []any{"a", "b"}, out["required"])
		assert.NotContains(t, dst["properties"].(map[string]any), "b", "dst is not modified")
	})

	t.Run("scalar values are replaced", func(t *testing.T) {
		out := DeepMerge(map[string]any{"type": "string"}, map[string]any{"type": "number"})
		assert.Equal(t, "number", out["type"])
	})
}

func TestMerge(t *testing.T) {
	base := mustFromRaw(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":     map[string]any{"type": "string"},
			"completed": map[string]any{"type": "boolean"},
			"priority":  map[string]any{"type": "integer"},
		},
	})
	ext := mustFromRaw(t, map[string]any{
		"properties": map[string]any{
			"uid":         map[string]any{"type": "string"},
			"dateCreated": map[string]any{"type": "string", "format": "date-time"},
		},
		"required": []any{"uid"},
	})

	merged, err := Merge(base, ext)
	require.NoError(t, err)

	assert.Len(t, merged.Properties, 5)
	assert.Equal(t, []string{"uid"}, merged.Required)
	assert.Len(t, base.Properties, 3)
}

func TestConflictingTypes(t *testing.T) {
	assert.True(t, ConflictingTypes(PrimitiveSchema("string"), PrimitiveSchema("number")))
	assert.False(t, ConflictingTypes(PrimitiveSchema("integer"), PrimitiveSchema("number")))
	assert.False(t, ConflictingTypes(PrimitiveSchema("object"), &spec.Schema{}))
}

func TestHasStructure(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want bool
	}{
		{"annotations only", map[string]any{"title": "T", "description": "d", "deprecated": true}, false},
		{"type", map[string]any{"type": "integer"}, true},
		{"format", map[string]any{"format": "date-time"}, true},
		{"nullable", map[string]any{"nullable": true}, true},
		{"numeric bound", map[string]any{"minimum": 0}, true},
		{"string pattern", map[string]any{"pattern": "^a"}, true},
		{"properties", map[string]any{"properties": map[string]any{"a": map[string]any{}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasStructure(mustFromRaw(t, tt.raw)))
		})
	}
}

func TestSubsumes(t *testing.T) {
	cat := mustFromRaw(t, map[string]any{
		"type":       "object",
		"required":   []any{"meow"},
		"properties": map[string]any{"meow": map[string]any{"type": "boolean"}},
	})

	t.Run("same type adds nothing", func(t *testing.T) {
		ok, err := Subsumes(cat, PrimitiveSchema("object"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("extra property is a new constraint", func(t *testing.T) {
		extra := mustFromRaw(t, map[string]any{"properties": map[string]any{"kind": map[string]any{"type": "string"}}})
		ok, err := Subsumes(cat, extra)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing type is a new constraint", func(t *testing.T) {
		ok, err := Subsumes(mustFromRaw(t, map[string]any{"minimum": 0}), PrimitiveSchema("integer"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestClone(t *testing.T) {
	s := ObjectSchema(map[string]spec.Schema{"a": *PrimitiveSchema("string")}, []string{"a"})

	c, err := Clone(s)
	require.NoError(t, err)
	c.Properties["b"] = *PrimitiveSchema("number")

	assert.Len(t, s.Properties, 1)
	assert.Len(t, c.Properties, 2)
	assert.JSONEq(t, `{"type":"object","required":["a"],"properties":{"a":{"type":"string"}}}`, Compact(s))
}

func TestItems(t *testing.T) {
	arr := mustFromRaw(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}})
	assert.Len(t, Items(arr), 1)
	assert.Nil(t, Items(PrimitiveSchema("array")))
	assert.True(t, HasStructure(arr))
	assert.False(t, HasStructure(&spec.Schema{SchemaProps: spec.SchemaProps{Description: "d"}}))
}

func TestRewriteRefs(t *testing.T) {
	s := mustFromRaw(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{"$ref": "#/Code"},
			"tags": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/Tag"}},
		},
	})

	out, err := RewriteRefs(s, func(ref string) string { return "common.yaml" + ref })
	require.NoError(t, err)

	code := out.Properties["code"]
	assert.Equal(t, "common.yaml#/Code", RefOf(&code))
	tags := out.Properties["tags"]
	assert.Equal(t, "common.yaml#/Tag", RefOf(tags.Items.Schema))

	original := s.Properties["code"]
	assert.Equal(t, "#/Code", RefOf(&original))
}
