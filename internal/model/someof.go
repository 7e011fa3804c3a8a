package model

import (
	"fmt"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/schema"
)

// SomeOf is a oneOf, anyOf or allOf descriptor. allOf members are merged
// into a single composite branch; oneOf and anyOf keep one branch per
// member.
type SomeOf struct {
	base
	combinator schema.Combinator
	branches   []Container
}

func newSomeOf(ctx *Context, fragment *spec.Schema, opts Options, entry *slot) (*SomeOf, error) {
	combinator, members, ok := schema.CombinatorOf(fragment)
	if !ok {
		return nil, domain.NewCombinatorError(opts.Ref, schema.Compact(fragment))
	}

	s := &SomeOf{base: newBase(domain.KindSomeOf, ctx, fragment, opts), combinator: combinator}
	entry.claim(s)

	common := schema.CommonPart(fragment)

	var branchFragments []*spec.Schema
	if combinator == schema.AllOf {
		composite, err := s.composite(common, members, opts)
		if err != nil {
			return nil, err
		}
		branchFragments = []*spec.Schema{composite}
	} else {
		for i := range members {
			branch, err := s.branch(common, &members[i], opts)
			if err != nil {
				return nil, err
			}
			branchFragments = append(branchFragments, branch)
		}
	}

	for i, branch := range branchFragments {
		suggested := opts.hint()
		if combinator != schema.AllOf {
			suggested = fmt.Sprintf("%s_%d", suggested, i)
		}
		container, err := ctx.convert(branch, opts.child(suggested))
		if err != nil {
			return nil, err
		}
		s.branches = append(s.branches, container)
	}

	return s, nil
}

// branch applies the shared constraints of the parent to one oneOf/anyOf
// member. Members are kept as-is when the parent only carries annotations,
// and a $ref member stays a reference when its target already satisfies
// every shared constraint.
func (s *SomeOf) branch(common, member *spec.Schema, opts Options) (*spec.Schema, error) {
	if !schema.HasStructure(common) {
		return member, nil
	}
	resolved, err := s.resolveMember(member, opts)
	if err != nil {
		return nil, err
	}
	shared := constraints(common)
	if schema.IsRefSchema(member) {
		covered, err := schema.Subsumes(resolved, shared)
		if err != nil {
			return nil, err
		}
		if covered {
			return member, nil
		}
	}
	return schema.Merge(shared, resolved)
}

// constraints strips the annotations of the parent that describe the
// declaration itself rather than its values.
func constraints(common *spec.Schema) *spec.Schema {
	shared := *common
	shared.Title = ""
	shared.Description = ""
	shared.Example = nil
	if len(common.ExtraProps) > 0 {
		shared.ExtraProps = make(map[string]interface{}, len(common.ExtraProps))
		for k, v := range common.ExtraProps {
			if k != "deprecated" && k != "example" {
				shared.ExtraProps[k] = v
			}
		}
	}
	return &shared
}

// composite flattens allOf members, following $ref members and nested
// allOf, and deep-merges them with the common part.
func (s *SomeOf) composite(common *spec.Schema, members []spec.Schema, opts Options) (*spec.Schema, error) {
	var pieces []*spec.Schema
	visited := map[string]bool{}

	var flatten func(member *spec.Schema, base string) error
	flatten = func(member *spec.Schema, base string) error {
		if schema.IsRefSchema(member) {
			ref := s.ctx.qualify(schema.RefOf(member), base)
			if visited[ref] {
				return nil
			}
			visited[ref] = true
			resolved, err := s.ctx.resolver.ResolveSchema(ref)
			if err != nil {
				return err
			}
			member, base = resolved, ref
		}
		if len(member.AllOf) > 0 {
			rest := schema.CommonPart(member)
			for i := range member.AllOf {
				if err := flatten(&member.AllOf[i], base); err != nil {
					return err
				}
			}
			member = rest
		}
		qualified, err := s.qualifyRefs(member, base, opts.Base)
		if err != nil {
			return err
		}
		pieces = append(pieces, qualified)
		return nil
	}

	for i := range members {
		if err := flatten(&members[i], opts.Base); err != nil {
			return nil, err
		}
	}

	if schema.ConflictingTypes(append([]*spec.Schema{common}, pieces...)...) {
		s.ctx.warn(domain.WarnUnsupportedVariant, opts.Ref,
			"allOf merges members with incompatible types; output is best effort")
	}

	shared := *common
	shared.Title = ""
	shared.Description = ""
	merged, err := schema.Merge(append(append([]*spec.Schema{}, pieces...), &shared)...)
	if err != nil {
		return nil, &domain.Error{Code: domain.CodeCombinator, Reference: opts.Ref, Fragment: schema.Compact(s.schema), Message: "merging allOf members", Err: err}
	}
	merged.Title = ""
	merged.Description = ""
	return merged, nil
}

func (s *SomeOf) resolveMember(member *spec.Schema, opts Options) (*spec.Schema, error) {
	if !schema.IsRefSchema(member) {
		return member, nil
	}
	ref := s.ctx.qualify(schema.RefOf(member), opts.Base)
	resolved, err := s.ctx.resolver.ResolveSchema(ref)
	if err != nil {
		return nil, err
	}
	return s.qualifyRefs(resolved, ref, opts.Base)
}

// qualifyRefs rewrites the nested refs of a fragment read from the document
// at from so they still resolve once the fragment is converted relative to
// the document at to.
func (s *SomeOf) qualifyRefs(member *spec.Schema, from, to string) (*spec.Schema, error) {
	if domain.ParseReference(from).Locator == domain.ParseReference(to).Locator {
		return member, nil
	}
	return schema.RewriteRefs(member, func(ref string) string {
		return s.ctx.qualify(ref, from)
	})
}

// Combinator returns the variant keyword.
func (s *SomeOf) Combinator() schema.Combinator {
	return s.combinator
}

// Branches returns one container per branch.
func (s *SomeOf) Branches() []Container {
	return s.branches
}

func (s *SomeOf) Render(deps *Dependencies, root bool) (string, error) {
	if !root {
		if s.name != "" {
			return reference(s, deps), nil
		}
		return s.inline(deps)
	}
	if err := s.requireName(); err != nil {
		return "", err
	}

	if obj, ok := s.single(); ok {
		return obj.declare(s.name, s.Comments(), deps)
	}

	expr, err := s.inline(deps)
	if err != nil {
		return "", err
	}
	return s.alias(expr), nil
}

// single returns the anonymous object an allOf collapsed into, if any.
func (s *SomeOf) single() (*Object, bool) {
	if len(s.branches) != 1 || len(s.branches[0]) != 1 {
		return nil, false
	}
	obj, ok := s.branches[0][0].(*Object)
	if !ok || obj.name != "" {
		return nil, false
	}
	return obj, true
}

func (s *SomeOf) inline(deps *Dependencies) (string, error) {
	join := " | "
	if s.combinator == schema.AllOf {
		join = " & "
	}

	seen := map[string]bool{}
	var parts []string
	for _, branch := range s.branches {
		text, err := branch.Inline(deps)
		if err != nil {
			return "", err
		}
		if seen[text] {
			continue
		}
		seen[text] = true

		if join == " & " && len(branch) > 1 {
			text = "(" + text + ")"
		}
		if desc := branchDescription(branch); desc != "" && desc != strings.TrimSpace(s.schema.Description) {
			text += trailingComment(desc)
		}
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return "any", nil
	}
	return strings.Join(parts, join), nil
}

func branchDescription(branch Container) string {
	if len(branch) == 0 || branch[0].Schema() == nil {
		return ""
	}
	return strings.TrimSpace(branch[0].Schema().Description)
}
