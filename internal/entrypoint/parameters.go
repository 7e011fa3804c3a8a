package entrypoint

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/jsonpointer"
)

type parameter struct {
	name     string
	in       string
	required bool
	fragment map[string]any
}

// parameters builds the <Op>Parameters object fragment. Path-item parameters
// come first and operation parameters replace them by in:name.
func (s *Service) parameters(op Operation, item *openapi3.PathItem, operation *openapi3.Operation) (*Entry, error) {
	byKey := map[string]parameter{}
	var order []string

	collect := func(pointer string, refs openapi3.Parameters) error {
		for i := range refs {
			p, err := s.parameter(pointer + "/parameters/" + fmt.Sprint(i))
			if err != nil {
				return err
			}
			key := p.in + ":" + p.name
			if _, exists := byKey[key]; !exists {
				order = append(order, key)
			}
			byKey[key] = p
		}
		return nil
	}

	if err := collect(pathPointer(op.Path), item.Parameters); err != nil {
		return nil, err
	}
	if err := collect(op.Pointer, operation.Parameters); err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, nil
	}

	properties := map[string]any{}
	var required []string
	for _, key := range order {
		p := byKey[key]
		if _, dup := properties[p.name]; dup {
			s.debug.Printf("parameter %s of %s shadows a parameter with the same name", key, op)
		}
		properties[p.name] = p.fragment
		if p.required {
			required = append(required, p.name)
		}
	}

	fragment := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sort.Strings(required)
		fragment["required"] = dedupe(required)
	}

	e := s.entry(op, RoleParameters, op.Name+"Parameters", fragment)
	return &e, nil
}

func (s *Service) parameter(ref string) (parameter, error) {
	raw, at, err := s.resolveRaw(ref)
	if err != nil {
		return parameter{}, err
	}

	p := parameter{}
	p.name, _ = raw["name"].(string)
	p.in, _ = raw["in"].(string)
	p.required, _ = raw["required"].(bool)
	if p.in == openapi3.ParameterInPath {
		p.required = true
	}

	switch {
	case raw["schema"] != nil:
		p.fragment = copyFragment(raw["schema"], at)
	default:
		content, _ := raw["content"].(map[string]any)
		if contentType, ok := s.pickContentType(content); ok {
			media, _ := content[contentType].(map[string]any)
			p.fragment = copyFragment(media["schema"], at)
		} else {
			p.fragment = map[string]any{}
		}
	}

	if description, ok := raw["description"].(string); ok && description != "" {
		p.fragment["description"] = description
	}
	if deprecated, _ := raw["deprecated"].(bool); deprecated {
		p.fragment["deprecated"] = true
	}
	return p, nil
}

// pickContentType returns the default content type when present, otherwise
// the first one in sorted order.
func (s *Service) pickContentType(content map[string]any) (string, bool) {
	if len(content) == 0 {
		return "", false
	}
	if _, ok := content[s.defaultContentType]; ok {
		return s.defaultContentType, true
	}
	return sortedKeys(content)[0], true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func child(ref, segment string) string {
	return ref + "/" + jsonpointer.Escape(segment)
}
