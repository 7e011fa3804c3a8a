package model

import (
	"sort"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/naming"
)

// Property is one member of an object shape.
type Property struct {
	Name     string
	Required bool
	ReadOnly bool
	// Index marks the `[key: string]` signature.
	Index  bool
	Types  Container
	Schema *spec.Schema
}

// PropertySet is one record shape.
type PropertySet []Property

// Object is a record type. It normally holds one property set; more than
// one renders as a union of record shapes.
type Object struct {
	base
	sets   []PropertySet
	closed bool
}

func newObject(ctx *Context, fragment *spec.Schema, opts Options, entry *slot) (*Object, error) {
	o := &Object{base: newBase(domain.KindObject, ctx, fragment, opts)}
	entry.claim(o)

	set, err := o.properties(fragment, opts)
	if err != nil {
		return nil, err
	}
	o.sets = []PropertySet{set}
	return o, nil
}

func (o *Object) properties(fragment *spec.Schema, opts Options) (PropertySet, error) {
	required := make(map[string]bool, len(fragment.Required))
	for _, name := range fragment.Required {
		required[name] = true
	}

	names := make([]string, 0, len(fragment.Properties))
	for name := range fragment.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	set := make(PropertySet, 0, len(names)+1)
	for _, name := range names {
		prop := fragment.Properties[name]
		types, err := o.ctx.convert(&prop, opts.child(opts.hint()+naming.ToPascalCase(name)))
		if err != nil {
			return nil, err
		}
		set = append(set, Property{
			Name:     name,
			Required: required[name],
			ReadOnly: prop.ReadOnly,
			Types:    types,
			Schema:   &prop,
		})
	}

	additional := fragment.AdditionalProperties
	switch {
	case additional != nil && additional.Schema != nil:
		types, err := o.ctx.convert(additional.Schema, opts.child(opts.hint()+"Value"))
		if err != nil {
			return nil, err
		}
		set = append(set, Property{Name: "key", Index: true, Required: true, Types: types})
	case additional != nil && !additional.Allows:
		o.closed = len(set) == 0
	case len(set) == 0:
		set = append(set, Property{Name: "key", Index: true, Required: true, Types: Container{newValue(domain.KindAny, o.ctx, nil, Options{})}})
	}

	return set, nil
}

// Sets returns the object's property sets.
func (o *Object) Sets() []PropertySet {
	return o.sets
}

func (o *Object) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if o.name != "" {
			return reference(o, deps), nil
		}
		return o.inline(deps)
	}
	if err := o.requireName(); err != nil {
		return "", err
	}
	return o.declare(o.name, o.Comments(), deps)
}

// declare renders the object as a top-level declaration under name.
func (o *Object) declare(name, comments string, deps *Dependencies) (string, error) {
	if o.closed {
		return comments + "export type " + name + " = Record<string, never>;", nil
	}
	if len(o.sets) == 1 {
		body, err := o.sets[0].render(deps, "  ")
		if err != nil {
			return "", err
		}
		return comments + "export interface " + name + " {\n" + body + "}", nil
	}
	expr, err := o.inline(deps)
	if err != nil {
		return "", err
	}
	return comments + "export type " + name + " = " + expr + ";", nil
}

func (o *Object) inline(deps *Dependencies) (string, error) {
	if o.closed {
		return "Record<string, never>", nil
	}
	shapes := make([]string, 0, len(o.sets))
	for _, set := range o.sets {
		shape, err := set.inline(deps)
		if err != nil {
			return "", err
		}
		shapes = append(shapes, shape)
	}
	return strings.Join(shapes, " | "), nil
}

func (s PropertySet) render(deps *Dependencies, indent string) (string, error) {
	var b strings.Builder
	for _, p := range s {
		line, err := p.member(deps)
		if err != nil {
			return "", err
		}
		b.WriteString(docComment(p.Schema, indent))
		b.WriteString(indent + line + "\n")
	}
	return b.String(), nil
}

func (s PropertySet) inline(deps *Dependencies) (string, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	members := make([]string, 0, len(s))
	for _, p := range s {
		line, err := p.member(deps)
		if err != nil {
			return "", err
		}
		members = append(members, line)
	}
	return "{ " + strings.Join(members, " ") + " }", nil
}

// member renders `key?: Type;`.
func (p Property) member(deps *Dependencies) (string, error) {
	types, err := p.Types.Inline(deps)
	if err != nil {
		return "", err
	}
	if p.Index {
		return "[" + p.Name + ": string]: " + types + ";", nil
	}

	var b strings.Builder
	if p.ReadOnly {
		b.WriteString("readonly ")
	}
	b.WriteString(naming.PropertyKey(p.Name))
	if !p.Required {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(types)
	b.WriteString(";")
	return b.String(), nil
}
