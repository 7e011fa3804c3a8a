package naming

import (
	"strconv"
	"strings"
	"unicode"
)

// reservedWords cannot be used as type names.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true, "yield": true,
	"any": true, "boolean": true, "number": true, "string": true, "symbol": true,
	"type": true, "never": true, "unknown": true, "object": true,
}

// IsReserved reports whether name is a reserved word or builtin type name.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// IsIdentifier reports whether name is a valid identifier.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// PropertyKey returns name as an object key, quoted when it is not a valid identifier.
func PropertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

// SanitizeIdentifier makes name a valid type identifier.
func SanitizeIdentifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(out)[0]) || IsReserved(out) {
		out = "_" + out
	}
	return out
}
