package model

import (
	"strings"

	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"

	"github.com/griffnb/core-typegen/internal/schema"
)

// docComment renders title, description, deprecation and example as a
// JSDoc block, one line when it fits, each line prefixed with indent.
func docComment(s *spec.Schema, indent string) string {
	if s == nil {
		return ""
	}

	var lines []string
	if title := strings.TrimSpace(s.Title); title != "" {
		lines = append(lines, splitLines(title)...)
	}
	if desc := strings.TrimSpace(s.Description); desc != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(desc)...)
	}
	if schema.Deprecated(s) {
		lines = append(lines, "@deprecated")
	}
	if s.Example != nil {
		if data, err := json.Marshal(s.Example); err == nil {
			lines = append(lines, "@example "+string(data))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	if len(lines) == 1 {
		return indent + "/** " + escapeComment(lines[0]) + " */\n"
	}

	var b strings.Builder
	b.WriteString(indent + "/**\n")
	for _, line := range lines {
		if line == "" {
			b.WriteString(indent + " *\n")
			continue
		}
		b.WriteString(indent + " * " + escapeComment(line) + "\n")
	}
	b.WriteString(indent + " */\n")
	return b.String()
}

func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}

func escapeComment(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}

// trailingComment renders a description as an inline block comment.
func trailingComment(desc string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if desc == "" {
		return ""
	}
	return " /* " + escapeComment(desc) + " */"
}
