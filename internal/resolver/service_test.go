package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-typegen/internal/domain"
)

func testDocument() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"components": map[string]any{
			"schemas": map[string]any{
				"Widget": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{"type": "integer"},
					},
				},
				"a/b": map[string]any{"type": "string"},
			},
		},
	}
}

type mapLoader map[string]any

func (m mapLoader) Load(locator string) (any, error) {
	doc, ok := m[locator]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func TestResolveSchema(t *testing.T) {
	s := NewService(testDocument())

	t.Run("resolves local pointer", func(t *testing.T) {
		fragment, err := s.ResolveSchema("#/components/schemas/Widget")
		require.NoError(t, err)
		assert.Contains(t, fragment.Properties, "id")
	})

	t.Run("backslash delimited pointer", func(t *testing.T) {
		fragment, err := s.ResolveSchema(`#\components\schemas\Widget`)
		require.NoError(t, err)
		assert.True(t, fragment.Type.Contains("object"))
	})

	t.Run("escaped segment", func(t *testing.T) {
		fragment, err := s.ResolveSchema("#/components/schemas/a~1b")
		require.NoError(t, err)
		assert.True(t, fragment.Type.Contains("string"))
	})

	t.Run("each call returns a distinct fragment", func(t *testing.T) {
		first, err := s.ResolveSchema("#/components/schemas/Widget")
		require.NoError(t, err)
		second, err := s.ResolveSchema("#/components/schemas/Widget")
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, first.Properties, second.Properties)
	})

	t.Run("missing pointer is a reference error", func(t *testing.T) {
		_, err := s.ResolveSchema("#/components/schemas/Missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrReference))
		assert.Contains(t, err.Error(), "#/components/schemas/Missing")
	})

	t.Run("non-schema value is a reference error", func(t *testing.T) {
		_, err := s.ResolveSchema("#/openapi")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrReference))
	})
}

func TestForeignReferences(t *testing.T) {
	t.Run("fails without loader", func(t *testing.T) {
		s := NewService(testDocument())
		_, err := s.Lookup("common.yaml#/components/schemas/Error")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrReference))
		assert.Contains(t, err.Error(), "no loader")
	})

	t.Run("delegates to loader", func(t *testing.T) {
		s := NewService(testDocument(), WithForeignLoader(mapLoader{
			"common.yaml": map[string]any{"Error": map[string]any{"type": "string"}},
		}))

		fragment, err := s.ResolveSchema("common.yaml#/Error")
		require.NoError(t, err)
		assert.True(t, fragment.Type.Contains("string"))

		_, err = s.Lookup("other.yaml#/Error")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestMount(t *testing.T) {
	s := NewService(testDocument())

	ref := s.Mount("#/x-typegen/entrypoints/GetWidgetsIdResponse", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})
	assert.Equal(t, "#/x-typegen/entrypoints/GetWidgetsIdResponse", ref)

	fragment, err := s.ResolveSchema(ref)
	require.NoError(t, err)
	assert.Contains(t, fragment.Properties, "name")

	nested, err := s.ResolveSchema(ref + "/properties/name")
	require.NoError(t, err)
	assert.True(t, nested.Type.Contains("string"))

	assert.Equal(t, []string{ref}, s.Mounted())
}
