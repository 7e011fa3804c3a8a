package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"widget_id", []string{"widget", "id"}},
		{"HTTPStatus", []string{"HTTP", "Status"}},
		{"todoItem", []string{"todo", "Item"}},
		{"/widgets/{id}", []string{"widgets", "id"}},
		{"v2Widget", []string{"v2", "Widget"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestCasing(t *testing.T) {
	assert.Equal(t, "TodoItem", ToPascalCase("todo-item"))
	assert.Equal(t, "HTTPStatus", ToPascalCase("HTTPStatus"))
	assert.Equal(t, "Widget", ToPascalCase("widget"))
	assert.Equal(t, "inProgress", ToLowerCamelCase("in_progress"))
	assert.Equal(t, "active", ToLowerCamelCase("ACTIVE"))
	assert.Equal(t, "httpError", ToLowerCamelCase("HTTPError"))
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "TodoItem", ModelName("todo.item"))
	assert.Equal(t, "_200Response", ModelName("200 response"))
	assert.Equal(t, "_", ModelName("%%"))
}

func TestEnumMemberName(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"in_progress", "inProgress"},
		{"A+", "aPlus"},
		{"B-", "bMinus"},
		{"1", "_1"},
		{"2nd place", "_2ndPlace"},
		{"", "Empty"},
		{"!!", "Empty"},
		{"ACTIVE", "active"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, EnumMemberName(tt.value))
		})
	}
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, IsIdentifier("name"))
	assert.True(t, IsIdentifier("$ref"))
	assert.False(t, IsIdentifier("content-type"))
	assert.False(t, IsIdentifier("1a"))

	assert.Equal(t, "name", PropertyKey("name"))
	assert.Equal(t, `"content-type"`, PropertyKey("content-type"))

	assert.Equal(t, "_string", SanitizeIdentifier("string"))
	assert.Equal(t, "_1Widget", SanitizeIdentifier("1Widget"))
	assert.Equal(t, "WidgetList", SanitizeIdentifier("Widget-List"))
}
