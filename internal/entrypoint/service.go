// Package entrypoint synthesizes named schema fragments for the parameters,
// request bodies and responses of every operation in an OpenAPI document.
// It only builds fragments with deterministic names; converting them is left
// to the descriptor model.
package entrypoint

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/jsonpointer"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/naming"
	"github.com/griffnb/core-typegen/internal/registry"
	"github.com/griffnb/core-typegen/internal/schema"
)

// MountPrefix is the pointer under which entry fragments are mounted.
const MountPrefix = "#/x-typegen/entrypoints/"

// DefaultContentType is the content type whose entries get no suffix.
const DefaultContentType = "application/json"

// maxRefHops bounds chains of $ref between parameter, body and response objects.
const maxRefHops = 32

var methodOrder = []string{
	http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete,
	http.MethodOptions, http.MethodHead, http.MethodPatch, http.MethodTrace,
}

// Lookup resolves a reference to a raw document value.
type Lookup interface {
	Lookup(ref string) (any, error)
}

// Option is a functional option for configuring Service.
type Option func(*Service)

// WithDebugger sets the debugger.
func WithDebugger(debug domain.Debugger) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// WithDefaultContentType changes the content type rendered without a suffix.
func WithDefaultContentType(contentType string) Option {
	return func(s *Service) {
		if contentType != "" {
			s.defaultContentType = contentType
		}
	}
}

// Service synthesizes entry points for one document.
type Service struct {
	doc                *openapi3.T
	lookup             Lookup
	debug              domain.Debugger
	defaultContentType string
	names              *registry.Service
}

// NewService creates a synthesizer over doc. lookup reads raw fragments from
// the same document.
func NewService(doc *openapi3.T, lookup Lookup, options ...Option) *Service {
	s := &Service{
		doc:                doc,
		lookup:             lookup,
		debug:              domain.NoOpDebugger(),
		defaultContentType: DefaultContentType,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Synthesize returns the entries of every operation, ordered by path, then
// method, then role.
func (s *Service) Synthesize() ([]Entry, error) {
	s.names = registry.NewService()

	if s.doc == nil || s.doc.Paths == nil {
		return nil, nil
	}

	paths := s.doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	var entries []Entry
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, method := range methodOrder {
			op, ok := ops[method]
			if !ok || op == nil {
				continue
			}
			opEntries, err := s.operation(path, method, item, op)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, path, err)
			}
			entries = append(entries, opEntries...)
		}
	}

	return entries, nil
}

func (s *Service) operation(path, method string, item *openapi3.PathItem, op *openapi3.Operation) ([]Entry, error) {
	info := Operation{
		Method:     method,
		Path:       path,
		Name:       s.names.Reserve(OperationName(method, path, op.OperationID)),
		Pointer:    pathPointer(path) + "/" + strings.ToLower(method),
		Deprecated: op.Deprecated,
	}
	s.debug.Printf("synthesizing entry points for %s as %s", info, info.Name)

	var entries []Entry

	params, err := s.parameters(info, item, op)
	if err != nil {
		return nil, err
	}
	if params != nil {
		entries = append(entries, *params)
	}

	requests, err := s.requests(info, op)
	if err != nil {
		return nil, err
	}
	entries = append(entries, requests...)

	responses, err := s.responses(info, op)
	if err != nil {
		return nil, err
	}
	entries = append(entries, responses...)

	if info.Deprecated {
		for i := range entries {
			entries[i].Fragment = deprecate(entries[i].Fragment)
		}
	}
	return entries, nil
}

// deprecate marks a fragment deprecated. A bare $ref ignores its siblings,
// so it is wrapped in a single-branch oneOf that carries the flag.
func deprecate(fragment map[string]any) map[string]any {
	if _, ok := fragment["$ref"]; ok {
		return map[string]any{"oneOf": []any{fragment}, "deprecated": true}
	}
	fragment["deprecated"] = true
	return fragment
}

// OperationName derives the PascalCase operation name: the operationId when
// present, otherwise the method followed by the path words.
// GET /widgets/{id} -> GetWidgetsId.
func OperationName(method, path, operationID string) string {
	if name := naming.ModelName(operationID); operationID != "" && name != "_" {
		return name
	}
	return naming.ModelName(strings.ToLower(method) + " " + path)
}

// MountRef returns the reference an entry named name is mounted at.
func MountRef(name string) string {
	return MountPrefix + jsonpointer.Escape(name)
}

func (s *Service) entry(op Operation, role Role, name string, fragment map[string]any) Entry {
	return Entry{
		Name:      name,
		Ref:       MountRef(name),
		Operation: op.String(),
		Role:      role,
		Fragment:  fragment,
	}
}

func pathPointer(path string) string {
	return "#/paths/" + jsonpointer.Escape(path)
}

// resolveRaw follows $ref chains starting at ref and returns the object
// reached together with its canonical reference.
func (s *Service) resolveRaw(ref string) (map[string]any, string, error) {
	current := domain.CanonicalRef(ref)
	for hop := 0; hop < maxRefHops; hop++ {
		value, err := s.lookup.Lookup(current)
		if err != nil {
			return nil, "", err
		}
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, "", domain.NewReferenceError(current, "expected an object")
		}
		next, isRef := obj["$ref"].(string)
		if !isRef {
			return obj, current, nil
		}
		current = qualify(next, current)
	}
	return nil, "", domain.NewReferenceError(ref, "too many chained references")
}

// copyFragment deep-copies a raw schema read from the document at base,
// qualifying its references so they resolve from the root document.
func copyFragment(v any, base string) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	copied := schema.RewriteRawRefs(v, func(ref string) string {
		return qualify(ref, base)
	})
	if obj, ok := copied.(map[string]any); ok {
		return obj
	}
	// boolean schemas
	return map[string]any{}
}

func qualify(ref, base string) string {
	return domain.ParseReference(ref).ResolveAgainst(domain.ParseReference(base)).Canonical()
}
