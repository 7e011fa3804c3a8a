package model

import (
	"strings"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/schema"
)

// Array is a sequence type.
type Array struct {
	base
	items []Container
}

func newArray(ctx *Context, fragment *spec.Schema, opts Options, entry *slot) (*Array, error) {
	a := &Array{base: newBase(domain.KindArray, ctx, fragment, opts)}
	entry.claim(a)

	for _, item := range schema.Items(fragment) {
		container, err := ctx.convert(&item, opts.child(opts.hint()+"Item"))
		if err != nil {
			return nil, err
		}
		a.items = append(a.items, container)
	}
	return a, nil
}

// Items returns one container per item fragment.
func (a *Array) Items() []Container {
	return a.items
}

func (a *Array) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if a.name != "" {
			return reference(a, deps), nil
		}
		return a.inline(deps)
	}
	if err := a.requireName(); err != nil {
		return "", err
	}
	expr, err := a.inline(deps)
	if err != nil {
		return "", err
	}
	return a.alias(expr), nil
}

func (a *Array) inline(deps *Dependencies) (string, error) {
	if len(a.items) == 0 {
		return "Array<any>", nil
	}
	seen := map[string]bool{}
	var members []string
	for _, item := range a.items {
		text, err := item.Inline(deps)
		if err != nil {
			return "", err
		}
		text = "Array<" + text + ">"
		if seen[text] {
			continue
		}
		seen[text] = true
		members = append(members, text)
	}
	return strings.Join(members, " | "), nil
}
