package domain

import (
	"path"
	"strings"
)

// RefPrefix is the pointer prefix of component schemas.
const RefPrefix = "#/components/schemas/"

// Reference is a parsed canonical reference: an optional foreign document
// locator plus a pointer into that document.
type Reference struct {
	Locator string
	Pointer string
}

// ParseReference splits ref at the first '#'. The pointer accepts both slash
// and backslash delimiters and is normalized to a leading-slash JSON pointer.
func ParseReference(ref string) Reference {
	locator, pointer := ref, ""
	if idx := strings.Index(ref, "#"); idx >= 0 {
		locator, pointer = ref[:idx], ref[idx+1:]
	}
	pointer = strings.ReplaceAll(pointer, "\\", "/")
	if pointer != "" && !strings.HasPrefix(pointer, "/") {
		pointer = "/" + pointer
	}
	return Reference{Locator: strings.TrimSpace(locator), Pointer: pointer}
}

// IsLocal reports whether the reference targets the currently loaded document.
func (r Reference) IsLocal() bool {
	return r.Locator == ""
}

// Canonical returns the normalized string form used as an index key.
func (r Reference) Canonical() string {
	return r.Locator + "#" + r.Pointer
}

// Segments returns the unescaped pointer segments.
func (r Reference) Segments() []string {
	if r.Pointer == "" || r.Pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(r.Pointer, "/"), "/")
	for i, p := range parts {
		parts[i] = unescapeSegment(p)
	}
	return parts
}

// LastSegment returns the final unescaped pointer segment, or "" for the root.
func (r Reference) LastSegment() string {
	segs := r.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Child returns the reference one level below r.
func (r Reference) Child(segment string) Reference {
	return Reference{Locator: r.Locator, Pointer: r.Pointer + "/" + escapeSegment(segment)}
}

// ResolveAgainst qualifies a reference found inside the document that base
// points into. Local references inherit the base locator; relative locators
// are taken relative to the base document.
func (r Reference) ResolveAgainst(base Reference) Reference {
	if r.Locator == "" {
		r.Locator = base.Locator
		return r
	}
	if base.Locator != "" && !path.IsAbs(r.Locator) && !strings.Contains(r.Locator, "://") {
		r.Locator = path.Join(path.Dir(base.Locator), r.Locator)
	}
	return r
}

// CanonicalRef normalizes a raw reference string.
func CanonicalRef(ref string) string {
	return ParseReference(ref).Canonical()
}

// ComponentRef returns the canonical reference of a components.schemas entry.
func ComponentRef(name string) string {
	return "#/components/schemas/" + escapeSegment(name)
}

func escapeSegment(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func unescapeSegment(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
