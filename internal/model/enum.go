package model

import (
	"fmt"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/naming"
)

// EnumMember is one named enum value.
type EnumMember struct {
	Name  string
	Value any
}

// Enum is a closed set of literal values. Anonymous enums are named "Enum"
// + their suggested name, made unique, unless they render inline.
type Enum struct {
	base
	members []EnumMember
}

func newEnum(ctx *Context, fragment *spec.Schema, opts Options, entry *slot) (*Enum, error) {
	var members []EnumMember
	used := map[string]int{}
	for _, v := range fragment.Enum {
		if v == nil {
			continue
		}
		name := naming.EnumMemberName(literalKey(v))
		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 0
		}
		members = append(members, EnumMember{Name: name, Value: v})
	}

	e := &Enum{members: members}
	// Anonymous string enums rendered inline are never declared and take
	// no name.
	if opts.Name == "" && !(ctx.inlineStringEnums && e.allStrings()) {
		opts.Name = ctx.names.Reserve(naming.SanitizeIdentifier("Enum" + opts.SuggestedName))
	}
	e.base = newBase(domain.KindEnum, ctx, fragment, opts)
	entry.claim(e)
	return e, nil
}

// Members returns the enum's members in declaration order.
func (e *Enum) Members() []EnumMember {
	return e.members
}

func (e *Enum) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if e.ctx.inlineStringEnums && e.allStrings() {
			return e.union()
		}
		return reference(e, deps), nil
	}
	if err := e.requireName(); err != nil {
		return "", err
	}

	if e.ctx.enumStyle == EnumStyleUnion || !(e.allStrings() || e.allNumbers()) {
		expr, err := e.union()
		if err != nil {
			return "", err
		}
		return e.alias(expr), nil
	}

	var b strings.Builder
	b.WriteString(e.Comments())
	b.WriteString("export enum " + e.name + " {\n")
	for _, m := range e.members {
		literal, err := literal(m.Value)
		if err != nil {
			return "", err
		}
		b.WriteString("  " + m.Name + " = " + literal + ",\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

func (e *Enum) union() (string, error) {
	if len(e.members) == 0 {
		return "never", nil
	}
	parts := make([]string, 0, len(e.members))
	for _, m := range e.members {
		text, err := literal(m.Value)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " | "), nil
}

func (e *Enum) allStrings() bool {
	for _, m := range e.members {
		if _, ok := m.Value.(string); !ok {
			return false
		}
	}
	return len(e.members) > 0
}

func (e *Enum) allNumbers() bool {
	for _, m := range e.members {
		if _, ok := m.Value.(float64); !ok {
			return false
		}
	}
	return len(e.members) > 0
}

func literal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("enum value %v: %w", v, err)
	}
	return string(data), nil
}

func literalKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	text, err := literal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return text
}
