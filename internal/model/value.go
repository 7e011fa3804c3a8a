package model

import (
	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/schema"
)

// Value is a leaf descriptor rendering a fixed primitive token.
type Value struct {
	base
	token string
}

func newValue(kind domain.Kind, ctx *Context, fragment *spec.Schema, opts Options) *Value {
	return &Value{base: newBase(kind, ctx, fragment, opts), token: valueToken(kind, fragment)}
}

func valueToken(kind domain.Kind, fragment *spec.Schema) string {
	switch kind {
	case domain.KindString:
		if fragment != nil && fragment.Format == "binary" {
			return "Blob"
		}
		return "string"
	case domain.KindNumber:
		return "number"
	case domain.KindBoolean:
		return "boolean"
	case domain.KindNull:
		return "null"
	default:
		return "any"
	}
}

// Token is the primitive type the value renders as.
func (v *Value) Token() string {
	return v.token
}

func (v *Value) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if v.name != "" {
			return reference(v, deps), nil
		}
		return v.token, nil
	}
	if err := v.requireName(); err != nil {
		return "", err
	}
	return v.alias(v.token), nil
}

// Instance names a type that exists outside the generated code.
type Instance struct {
	base
	external string
}

func newInstance(ctx *Context, fragment *spec.Schema, opts Options, external string) *Instance {
	// Instances never declare anything, so they carry no model name.
	opts.Name = ""
	if external == "" {
		external = "any"
	}
	return &Instance{base: newBase(domain.KindInstance, ctx, fragment, opts), external: external}
}

func instanceName(fragment *spec.Schema) string {
	if name := schema.ExtraString(fragment, "instanceof"); name != "" {
		return name
	}
	return schema.ExtraString(fragment, "x-instanceof")
}

// External is the referenced type name.
func (i *Instance) External() string {
	return i.external
}

func (i *Instance) Render(_ *Dependencies, root bool) (string, error) {
	if root {
		if err := i.requireName(); err != nil {
			return "", err
		}
	}
	return i.external, nil
}
