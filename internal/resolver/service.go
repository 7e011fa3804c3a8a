// Package resolver resolves canonical references to raw schema fragments.
//
// References without a document locator are evaluated as JSON pointers
// against the loaded root document. References with a locator are handed
// to a ForeignLoader; without one they fail. The resolver never caches
// fragments: every call decodes a fresh copy.
package resolver

import (
	"sort"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"github.com/go-openapi/spec"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/schema"
)

// ForeignLoader retrieves documents named by a reference locator.
type ForeignLoader interface {
	Load(locator string) (any, error)
}

// Option is a functional option for configuring Service.
type Option func(*Service)

// WithForeignLoader wires the collaborator used for references into other documents.
func WithForeignLoader(loader ForeignLoader) Option {
	return func(s *Service) {
		s.foreign = loader
	}
}

// Service resolves references against one root document.
type Service struct {
	root    any
	foreign ForeignLoader
	mounts  map[string]any
}

// NewService creates a resolver over the raw root document tree.
func NewService(root any, options ...Option) *Service {
	s := &Service{
		root:   root,
		mounts: make(map[string]any),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Mount attaches a synthesized fragment at a local pointer so it can be
// resolved like any document fragment. Mounted pointers shadow the document.
func (s *Service) Mount(ref string, value any) string {
	canonical := domain.CanonicalRef(ref)
	s.mounts[domain.ParseReference(canonical).Pointer] = value
	return canonical
}

// Mounted returns the canonical references of every mounted fragment, sorted.
func (s *Service) Mounted() []string {
	refs := make([]string, 0, len(s.mounts))
	for pointer := range s.mounts {
		refs = append(refs, "#"+pointer)
	}
	sort.Strings(refs)
	return refs
}

// Lookup returns the raw value ref points to.
func (s *Service) Lookup(ref string) (any, error) {
	parsed := domain.ParseReference(ref)

	doc := s.root
	pointer := parsed.Pointer

	if !parsed.IsLocal() {
		if s.foreign == nil {
			return nil, domain.NewReferenceError(ref, "no loader for foreign document %q", parsed.Locator)
		}
		loaded, err := s.foreign.Load(parsed.Locator)
		if err != nil {
			derr := domain.NewReferenceError(ref, "loading foreign document %q", parsed.Locator)
			derr.Err = err
			return nil, derr
		}
		doc = loaded
	} else if mounted, rest, ok := s.mountFor(pointer); ok {
		doc, pointer = mounted, rest
	}

	ptr, err := jsonpointer.New(pointer)
	if err != nil {
		derr := domain.NewReferenceError(ref, "invalid pointer")
		derr.Err = err
		return nil, derr
	}

	value, _, err := ptr.Get(doc)
	if err != nil {
		derr := domain.NewReferenceError(ref, "pointer does not reach a value")
		derr.Err = err
		return nil, derr
	}
	if value == nil {
		return nil, domain.NewReferenceError(ref, "pointer reaches a null value")
	}

	return value, nil
}

// ResolveSchema looks up ref and decodes the value as a schema fragment.
func (s *Service) ResolveSchema(ref string) (*spec.Schema, error) {
	value, err := s.Lookup(ref)
	if err != nil {
		return nil, err
	}

	if _, ok := value.(map[string]any); !ok {
		if _, isBool := value.(bool); !isBool {
			return nil, &domain.Error{
				Code:      domain.CodeReference,
				Reference: ref,
				Fragment:  schema.CompactRaw(value),
				Message:   "value is not a schema object",
			}
		}
		// true/false schemas accept anything/nothing; both render as any.
		value = map[string]any{}
	}

	fragment, err := schema.FromRaw(value)
	if err != nil {
		return nil, &domain.Error{
			Code:      domain.CodeReference,
			Reference: ref,
			Fragment:  schema.CompactRaw(value),
			Message:   "value is not a valid schema",
			Err:       err,
		}
	}
	return fragment, nil
}

// mountFor finds the longest mounted pointer that prefixes pointer and
// returns the mounted value with the remaining pointer.
func (s *Service) mountFor(pointer string) (any, string, bool) {
	best := ""
	found := false
	for mount := range s.mounts {
		if pointer == mount || strings.HasPrefix(pointer, mount+"/") {
			if !found || len(mount) > len(best) {
				best = mount
				found = true
			}
		}
	}
	if !found {
		return nil, "", false
	}
	return s.mounts[best], strings.TrimPrefix(pointer, best), true
}
