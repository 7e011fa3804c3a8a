// Package naming derives TypeScript identifiers from schema names and values.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser = cases.Title(language.Und, cases.NoLower)
	lowerCaser = cases.Lower(language.Und)
)

// Words splits in into words on separators and case boundaries.
// "widget_id" -> [widget id], "HTTPStatus" -> [HTTP Status].
func Words(in string) []string {
	var (
		runes = []rune(in)
		words []string
		cur   []rune
	)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for idx, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if idx > 0 && unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[idx-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && idx+1 < len(runes) && unicode.IsLower(runes[idx+1])) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

// ToPascalCase converts a name to PascalCase, keeping acronyms intact.
func ToPascalCase(in string) string {
	var b strings.Builder
	for _, w := range Words(in) {
		b.WriteString(title(w))
	}
	return b.String()
}

// title upper-cases the first letter of w and leaves the rest alone.
func title(w string) string {
	if w == "" || !unicode.IsLetter([]rune(w)[0]) {
		return w
	}
	return titleCaser.String(w)
}

// ToLowerCamelCase converts a name to lowerCamelCase.
func ToLowerCamelCase(in string) string {
	words := Words(in)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lowerCaser.String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title(lowerCaser.String(w)))
	}
	return b.String()
}

// ModelName turns a reference segment or synthesized name into a type name.
func ModelName(in string) string {
	return SanitizeIdentifier(ToPascalCase(in))
}

// EnumMemberName derives an enum member name from a literal value.
// A trailing '-' or '+' becomes "Minus" or "Plus", other non-word characters
// are dropped, and a leading digit gets an underscore.
func EnumMemberName(value string) string {
	switch {
	case strings.HasSuffix(value, "-"):
		value = strings.TrimSuffix(value, "-") + " Minus"
	case strings.HasSuffix(value, "+"):
		value = strings.TrimSuffix(value, "+") + " Plus"
	}

	name := ToLowerCamelCase(value)
	if name == "" {
		return "Empty"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}
