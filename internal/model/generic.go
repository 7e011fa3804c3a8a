package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/naming"
	"github.com/griffnb/core-typegen/internal/schema"
)

// GenericExtension is the vendor extension carrying a discriminated map.
const GenericExtension = "x-typegen-generic"

// Generic is a type keyed by a small discriminator such as a status code or
// a content type. Its declaration is a conditional type over a type
// parameter that defaults to the first key.
type Generic struct {
	base
	parameter string
	keys      []string
	cases     map[string]Container
}

func newGeneric(ctx *Context, fragment *spec.Schema, opts Options, entry *slot) (*Generic, error) {
	ext, _ := fragment.Extensions[GenericExtension].(map[string]any)
	rawCases, _ := ext["cases"].(map[string]any)

	g := &Generic{
		base:      newBase(domain.KindGeneric, ctx, fragment, opts),
		parameter: "Key",
		cases:     make(map[string]Container, len(rawCases)),
	}
	if p, ok := ext["parameter"].(string); ok && naming.IsIdentifier(p) {
		g.parameter = p
	}
	entry.claim(g)

	g.keys = caseOrder(ext["order"], rawCases)
	for _, key := range g.keys {
		fragment, err := schema.FromRaw(rawCases[key])
		if err != nil {
			return nil, &domain.Error{
				Code:      domain.CodeReference,
				Reference: opts.Ref,
				Fragment:  schema.CompactRaw(rawCases[key]),
				Message:   fmt.Sprintf("case %q is not a valid schema", key),
				Err:       err,
			}
		}
		container, err := ctx.convert(fragment, opts.child(opts.hint()+naming.ToPascalCase(key)))
		if err != nil {
			return nil, err
		}
		g.cases[key] = container
	}
	return g, nil
}

// caseOrder returns the keys listed in order first, then the remaining
// keys sorted.
func caseOrder(order any, cases map[string]any) []string {
	var keys []string
	seen := map[string]bool{}
	if list, ok := order.([]any); ok {
		for _, item := range list {
			key, ok := item.(string)
			if _, exists := cases[key]; ok && exists && !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	var rest []string
	for key := range cases {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Parameter is the discriminator's type parameter name.
func (g *Generic) Parameter() string {
	return g.parameter
}

// Keys returns the discriminator values in declaration order.
func (g *Generic) Keys() []string {
	return g.keys
}

// Case returns the container for one discriminator value.
func (g *Generic) Case(key string) (Container, bool) {
	c, ok := g.cases[key]
	return c, ok
}

func (g *Generic) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if g.name != "" {
			return reference(g, deps), nil
		}
		return g.union(deps)
	}
	if err := g.requireName(); err != nil {
		return "", err
	}
	if len(g.keys) == 0 {
		return g.alias("any"), nil
	}

	var b strings.Builder
	b.WriteString(g.Comments())
	fmt.Fprintf(&b, "export type %s<%s extends string = %s> =", g.name, g.parameter, quote(g.keys[0]))
	for _, key := range g.keys {
		text, err := g.cases[key].Inline(deps)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n  %s extends %s ? %s :", g.parameter, quote(key), text)
	}
	b.WriteString("\n  any;")
	return b.String(), nil
}

// union is the inline form: any of the cases.
func (g *Generic) union(deps *Dependencies) (string, error) {
	var parts []string
	seen := map[string]bool{}
	for _, key := range g.keys {
		text, err := g.cases[key].Inline(deps)
		if err != nil {
			return "", err
		}
		if !seen[text] {
			seen[text] = true
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "any", nil
	}
	return strings.Join(parts, " | "), nil
}

func quote(s string) string {
	text, err := literal(s)
	if err != nil {
		return `""`
	}
	return text
}
