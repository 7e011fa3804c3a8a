// Package model holds the descriptor model: the typed representation of
// schema fragments, the context that builds and memoizes descriptors, and
// the TypeScript render contract every descriptor kind implements.
package model

import (
	"strings"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
)

// Descriptor is the converted representation of one fragment.
type Descriptor interface {
	Kind() domain.Kind
	// ModelName is the declared type name, "" for anonymous descriptors.
	ModelName() string
	// SuggestedModelName is the fallback used to hoist anonymous members.
	SuggestedModelName() string
	// OriginalRef is the canonical reference this descriptor was built from.
	OriginalRef() string
	Schema() *spec.Schema
	// Render returns the full named declaration when root is true, or an
	// inline type expression otherwise. Named descriptors referenced by
	// the text are added to deps.
	Render(deps *Dependencies, root bool) (string, error)
	// Comments returns the JSDoc block for the descriptor, or "".
	Comments() string
}

type base struct {
	kind      domain.Kind
	name      string
	suggested string
	ref       string
	schema    *spec.Schema
	ctx       *Context
	nullable  bool
}

func newBase(kind domain.Kind, ctx *Context, fragment *spec.Schema, opts Options) base {
	return base{
		kind:      kind,
		name:      opts.Name,
		suggested: opts.SuggestedName,
		ref:       opts.Ref,
		schema:    fragment,
		ctx:       ctx,
	}
}

func (b *base) Kind() domain.Kind          { return b.kind }
func (b *base) ModelName() string          { return b.name }
func (b *base) SuggestedModelName() string { return b.suggested }
func (b *base) OriginalRef() string        { return b.ref }
func (b *base) Schema() *spec.Schema       { return b.schema }

func (b *base) Comments() string {
	return docComment(b.schema, "")
}

// hint is the name nested members derive their suggested names from.
func (b *base) hint() string {
	if b.name != "" {
		return b.name
	}
	return b.suggested
}

// requireName fails a root render of an anonymous descriptor.
func (b *base) requireName() error {
	if b.name == "" {
		return domain.NewUnnamedRootError(b.ref, b.suggested)
	}
	return nil
}

// alias renders `export type Name = expr;` with the descriptor's comments.
// A nullable declaration admits null itself, so importers of the name see
// it too.
func (b *base) alias(expr string) string {
	if b.nullable {
		expr += " | null"
	}
	return b.Comments() + "export type " + b.name + " = " + expr + ";"
}

func (b *base) markNullable() { b.nullable = true }

// Container is an ordered set of alternative descriptors for one schema
// position, e.g. `string | null`.
type Container []Descriptor

// Inline renders every member inline, drops duplicate texts and joins the
// rest as a union.
func (c Container) Inline(deps *Dependencies) (string, error) {
	parts, err := c.inlineParts(deps)
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "any", nil
	}
	return strings.Join(parts, " | "), nil
}

func (c Container) inlineParts(deps *Dependencies) ([]string, error) {
	var parts []string
	seen := map[string]bool{}
	for _, d := range c {
		text, err := d.Render(deps, false)
		if err != nil {
			return nil, err
		}
		if seen[text] {
			continue
		}
		seen[text] = true
		parts = append(parts, text)
	}
	return parts, nil
}

// Named returns the members that carry a model name.
func (c Container) Named() []Descriptor {
	var out []Descriptor
	for _, d := range c {
		if d.ModelName() != "" {
			out = append(out, d)
		}
	}
	return out
}

// Dependencies accumulates the named descriptors a render referenced,
// once each, in first-reference order.
type Dependencies struct {
	list []Descriptor
	seen map[Descriptor]bool
}

// NewDependencies creates an empty accumulator.
func NewDependencies() *Dependencies {
	return &Dependencies{seen: make(map[Descriptor]bool)}
}

// Add records d unless it is anonymous or already present.
func (d *Dependencies) Add(desc Descriptor) {
	if desc.ModelName() == "" || d.seen[desc] {
		return
	}
	d.seen[desc] = true
	d.list = append(d.list, desc)
}

// Contains reports whether desc was recorded.
func (d *Dependencies) Contains(desc Descriptor) bool {
	return d.seen[desc]
}

// List returns the recorded descriptors.
func (d *Dependencies) List() []Descriptor {
	return d.list
}

// Names returns the model names of the recorded descriptors.
func (d *Dependencies) Names() []string {
	names := make([]string, 0, len(d.list))
	for _, desc := range d.list {
		names = append(names, desc.ModelName())
	}
	return names
}

// reference renders a named descriptor as a bare name and records it.
func reference(desc Descriptor, deps *Dependencies) string {
	deps.Add(desc)
	return desc.ModelName()
}
