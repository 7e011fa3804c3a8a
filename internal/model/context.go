package model

import (
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/naming"
	"github.com/griffnb/core-typegen/internal/registry"
	"github.com/griffnb/core-typegen/internal/rules"
	"github.com/griffnb/core-typegen/internal/schema"
)

// Resolver turns canonical references into fresh fragments.
type Resolver interface {
	ResolveSchema(ref string) (*spec.Schema, error)
}

// Classifier picks the descriptor kind for a raw fragment.
type Classifier interface {
	Classify(raw any) domain.Kind
}

// EnumStyle selects how enums are declared.
type EnumStyle string

const (
	// EnumStyleEnum declares `export enum`.
	EnumStyleEnum EnumStyle = "enum"
	// EnumStyleUnion declares a literal union alias.
	EnumStyleUnion EnumStyle = "union"
)

// Options are the construction parameters for one conversion.
type Options struct {
	// Name is the model name; "" converts an anonymous descriptor.
	Name string
	// SuggestedName is the hoisting fallback for anonymous descriptors.
	SuggestedName string
	// Ref is the canonical reference the fragment was resolved from. The
	// result is indexed under it.
	Ref string
	// Base is the reference nested $refs are resolved against.
	Base string
}

func (o Options) hint() string {
	if o.Name != "" {
		return o.Name
	}
	return o.SuggestedName
}

// child returns options for an anonymous nested fragment.
func (o Options) child(suggested string) Options {
	return Options{SuggestedName: suggested, Base: o.Base}
}

// ContextOption is a functional option for configuring Context.
type ContextOption func(*Context)

// WithOverrides replaces models by name with external type names.
func WithOverrides(overrides map[string]string) ContextOption {
	return func(c *Context) {
		c.overrides = overrides
	}
}

// WithInlineStringEnums renders anonymous string enums as inline literal
// unions instead of hoisted declarations.
func WithInlineStringEnums(inline bool) ContextOption {
	return func(c *Context) {
		c.inlineStringEnums = inline
	}
}

// WithEnumStyle selects the enum declaration style.
func WithEnumStyle(style EnumStyle) ContextOption {
	return func(c *Context) {
		if style != "" {
			c.enumStyle = style
		}
	}
}

// WithNames shares a name registry with the caller.
func WithNames(names *registry.Service) ContextOption {
	return func(c *Context) {
		c.names = names
	}
}

// Context maps canonical references to the descriptors produced for them.
// It is scoped to one conversion run and is not safe for concurrent use.
type Context struct {
	resolver   Resolver
	classifier Classifier
	index      map[string]Container
	names      *registry.Service
	overrides  map[string]string
	warnings   []domain.Warning

	inlineStringEnums bool
	enumStyle         EnumStyle
}

// NewContext creates a context for one run.
func NewContext(resolver Resolver, classifier Classifier, options ...ContextOption) *Context {
	c := &Context{
		resolver:   resolver,
		classifier: classifier,
		index:      make(map[string]Container),
		names:      registry.NewService(),
		overrides:  map[string]string{},
		enumStyle:  EnumStyleEnum,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// Names returns the run's name registry.
func (c *Context) Names() *registry.Service {
	return c.names
}

// Warnings returns the non-fatal diagnostics recorded so far.
func (c *Context) Warnings() []domain.Warning {
	return c.warnings
}

// Lookup returns the container already produced for ref.
func (c *Context) Lookup(ref string) (Container, bool) {
	container, ok := c.index[domain.CanonicalRef(ref)]
	return container, ok
}

// FindOrCreate returns the container for ref, converting the referenced
// fragment on first use. Later calls return the same descriptors, including
// calls made while the first conversion is still in progress.
func (c *Context) FindOrCreate(ref string) (Container, error) {
	canonical := domain.CanonicalRef(ref)
	if container, ok := c.index[canonical]; ok {
		return container, nil
	}

	fragment, err := c.resolver.ResolveSchema(canonical)
	if err != nil {
		return nil, err
	}

	parsed := domain.ParseReference(canonical)
	name := c.names.Claim(canonical, naming.ModelName(parsed.LastSegment()))

	if external, ok := c.overrides[name]; ok {
		desc := newInstance(c, fragment, Options{Ref: canonical}, external)
		c.register(canonical, Container{desc})
		return Container{desc}, nil
	}

	return c.convert(fragment, Options{Name: name, Ref: canonical, Base: canonical})
}

// Convert converts a fragment that was not reached through a reference.
func (c *Context) Convert(fragment *spec.Schema, opts Options) (Container, error) {
	if opts.Ref != "" {
		opts.Ref = domain.CanonicalRef(opts.Ref)
		if container, ok := c.index[opts.Ref]; ok {
			return container, nil
		}
	}
	return c.convert(fragment, opts)
}

func (c *Context) convert(fragment *spec.Schema, opts Options) (Container, error) {
	if fragment == nil {
		fragment = &spec.Schema{}
	}

	if schema.IsRefSchema(fragment) {
		target := c.qualify(schema.RefOf(fragment), opts.Base)
		container, err := c.FindOrCreate(target)
		if err != nil {
			return nil, err
		}
		if opts.Ref != "" {
			c.register(opts.Ref, container)
		}
		return container, nil
	}

	nullable := schema.IsNullable(fragment) && !onlyNull(fragment)
	if nullable {
		fragment = withoutNull(fragment)
	}

	if types := fragment.Type; len(types) > 1 {
		if _, _, combined := schema.CombinatorOf(fragment); !combined && len(fragment.Enum) == 0 {
			return c.convertMultiType(fragment, opts, nullable)
		}
	}

	raw, err := schema.ToRaw(fragment)
	if err != nil {
		return nil, &domain.Error{Code: domain.CodeReference, Reference: opts.Ref, Message: "encoding fragment", Err: err}
	}

	kind := c.classifier.Classify(raw)
	if kind == domain.KindAny {
		if t, unknown := rules.UnknownType(raw); unknown {
			c.warn(domain.WarnCatchAll, opts.Ref, fmt.Sprintf("type %v is not recognized, using any", t))
		}
	}

	entry := &slot{ctx: c, ref: opts.Ref, nullable: nullable}

	var desc Descriptor
	switch kind {
	case domain.KindObject:
		desc, err = newObject(c, fragment, opts, entry)
	case domain.KindArray:
		desc, err = newArray(c, fragment, opts, entry)
	case domain.KindEnum:
		desc, err = newEnum(c, fragment, opts, entry)
	case domain.KindSomeOf:
		desc, err = newSomeOf(c, fragment, opts, entry)
	case domain.KindGeneric:
		desc, err = newGeneric(c, fragment, opts, entry)
	case domain.KindInstance:
		desc = newInstance(c, fragment, opts, instanceName(fragment))
	default:
		desc = newValue(kind, c, fragment, opts)
	}
	if err != nil {
		return nil, err
	}

	return entry.fill(desc), nil
}

// convertMultiType handles `type: [a, b]`. Anonymous fragments become a
// container with one member per type; named ones become an anyOf wrapper
// so the declaration keeps its name.
func (c *Context) convertMultiType(fragment *spec.Schema, opts Options, nullable bool) (Container, error) {
	branches := make([]spec.Schema, 0, len(fragment.Type))
	for _, t := range fragment.Type {
		branch := *fragment
		branch.Type = spec.StringOrArray{t}
		branch.Title = ""
		branch.Description = ""
		branches = append(branches, branch)
	}

	if opts.Name != "" {
		wrapper := &spec.Schema{
			SchemaProps: spec.SchemaProps{
				Title:       fragment.Title,
				Description: fragment.Description,
				AnyOf:       branches,
				Nullable:    nullable,
			},
		}
		return c.convert(wrapper, opts)
	}

	var out Container
	for i := range branches {
		container, err := c.convert(&branches[i], opts.child(opts.SuggestedName))
		if err != nil {
			return nil, err
		}
		out = append(out, container...)
	}
	if nullable {
		out = append(out, newValue(domain.KindNull, c, schema.PrimitiveSchema(domain.NULL), Options{}))
	}
	if opts.Ref != "" {
		c.register(opts.Ref, out)
	}
	return out, nil
}

// qualify resolves a nested $ref against the document its parent came from.
func (c *Context) qualify(ref, base string) string {
	return domain.ParseReference(ref).ResolveAgainst(domain.ParseReference(base)).Canonical()
}

func (c *Context) register(ref string, container Container) {
	if ref == "" {
		return
	}
	c.index[ref] = container
}

func (c *Context) warn(code domain.WarningCode, ref, message string) {
	c.warnings = append(c.warnings, domain.Warning{Code: code, Reference: ref, Message: message})
}

// slot is the index entry of a descriptor under construction. Kinds that
// can be self-referential claim it before converting their members.
type slot struct {
	ctx      *Context
	ref      string
	nullable bool
	claimed  Container
}

func (s *slot) claim(desc Descriptor) {
	s.claimed = Container{desc}
	if s.nullable {
		if n, ok := desc.(interface{ markNullable() }); ok {
			n.markNullable()
		}
		s.claimed = append(s.claimed, newValue(domain.KindNull, s.ctx, schema.PrimitiveSchema(domain.NULL), Options{}))
	}
	s.ctx.register(s.ref, s.claimed)
}

func (s *slot) fill(desc Descriptor) Container {
	if s.claimed == nil {
		s.claim(desc)
	}
	return s.claimed
}

func onlyNull(s *spec.Schema) bool {
	if len(s.Type) == 0 {
		return false
	}
	for _, t := range s.Type {
		if t != domain.NULL {
			return false
		}
	}
	return true
}

func withoutNull(s *spec.Schema) *spec.Schema {
	c := *s
	c.Nullable = false
	c.Type = schema.NonNullTypes(s)
	if len(s.Enum) > 0 {
		c.Enum = nil
		for _, v := range s.Enum {
			if v != nil {
				c.Enum = append(c.Enum, v)
			}
		}
	}
	return &c
}
