package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaim(t *testing.T) {
	t.Run("same owner gets same name", func(t *testing.T) {
		s := NewService()
		first := s.Claim("#/components/schemas/Widget", "Widget")
		second := s.Claim("#/components/schemas/Widget", "Widget")
		assert.Equal(t, "Widget", first)
		assert.Equal(t, first, second)
	})

	t.Run("different owners with same base are suffixed", func(t *testing.T) {
		s := NewService()
		assert.Equal(t, "Widget", s.Claim("#/components/schemas/widget", "Widget"))
		assert.Equal(t, "Widget_1", s.Claim("#/components/schemas/Widget", "Widget"))

		name, ok := s.Lookup("#/components/schemas/Widget")
		assert.True(t, ok)
		assert.Equal(t, "Widget_1", name)

		owner, ok := s.Owner("Widget")
		assert.True(t, ok)
		assert.Equal(t, "#/components/schemas/widget", owner)
	})
}

func TestReserve(t *testing.T) {
	s := NewService()

	// Arrange: a reference-owned name already uses the _1 slot
	s.Claim("#/a", "EnumHero_1")

	// Act
	names := []string{s.Reserve("EnumHero"), s.Reserve("EnumHero"), s.Reserve("EnumHero")}

	// Assert
	assert.Equal(t, []string{"EnumHero", "EnumHero_2", "EnumHero_3"}, names)
	assert.Equal(t, []string{"EnumHero", "EnumHero_1", "EnumHero_2", "EnumHero_3"}, s.Names())
	assert.False(t, s.Taken("EnumHero_4"))
}
