package entrypoint

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/griffnb/core-typegen/internal/model"
	"github.com/griffnb/core-typegen/internal/naming"
)

// requests builds one <Op><Suffix>Request entry per request body content
// type and, with more than one content type, the <Op>Requests map.
func (s *Service) requests(op Operation, operation *openapi3.Operation) ([]Entry, error) {
	if operation.RequestBody == nil {
		return nil, nil
	}
	body, at, err := s.resolveRaw(child(op.Pointer, "requestBody"))
	if err != nil {
		return nil, err
	}

	content, _ := body["content"].(map[string]any)
	types := s.contentTypes(content)
	suffixes := contentSuffixes(types, s.defaultContentType)
	required, _ := body["required"].(bool)

	var entries []Entry
	cases := map[string]any{}
	for _, contentType := range types {
		media, _ := content[contentType].(map[string]any)
		fragment := copyFragment(media["schema"], child(child(at, "content"), contentType))
		if description, ok := body["description"].(string); ok && description != "" && fragment["description"] == nil && fragment["$ref"] == nil {
			fragment["description"] = description
		}

		e := s.entry(op, RoleRequest, op.Name+suffixes[contentType]+"Request", fragment)
		e.ContentType = contentType
		entries = append(entries, e)
		cases[contentType] = map[string]any{"$ref": e.Ref}
	}

	if len(types) > 1 {
		e := s.entry(op, RoleRequests, op.Name+"Requests", genericFragment("ContentType", types, cases))
		entries = append(entries, e)
	}
	if !required && len(entries) > 0 {
		s.debug.Printf("request body of %s is optional", op)
	}
	return entries, nil
}

// responses builds one <Op><Suffix>Response<Status> entry per status and
// content type, plus the <Op>Responses map keyed by status.
func (s *Service) responses(op Operation, operation *openapi3.Operation) ([]Entry, error) {
	if operation.Responses == nil {
		return nil, nil
	}
	statuses := sortStatuses(operation.Responses.Map())
	if len(statuses) == 0 {
		return nil, nil
	}

	var entries []Entry
	cases := map[string]any{}
	for _, status := range statuses {
		response, at, err := s.resolveRaw(child(child(op.Pointer, "responses"), status))
		if err != nil {
			return nil, err
		}
		description, _ := response["description"].(string)

		content, _ := response["content"].(map[string]any)
		types := s.contentTypes(content)
		if len(types) == 0 {
			fragment := map[string]any{"type": "null"}
			if description != "" {
				fragment["description"] = description
			}
			e := s.entry(op, RoleResponse, op.Name+"Response"+statusSuffix(status), fragment)
			e.Status = status
			entries = append(entries, e)
			cases[status] = map[string]any{"$ref": e.Ref}
			continue
		}

		suffixes := contentSuffixes(types, s.defaultContentType)
		var refs []any
		for _, contentType := range types {
			media, _ := content[contentType].(map[string]any)
			fragment := copyFragment(media["schema"], child(child(at, "content"), contentType))
			if description != "" && fragment["description"] == nil && fragment["$ref"] == nil {
				fragment["description"] = description
			}

			e := s.entry(op, RoleResponse, op.Name+suffixes[contentType]+"Response"+statusSuffix(status), fragment)
			e.Status = status
			e.ContentType = contentType
			entries = append(entries, e)
			refs = append(refs, map[string]any{"$ref": e.Ref})
		}
		if len(refs) == 1 {
			cases[status] = refs[0]
		} else {
			cases[status] = map[string]any{"anyOf": refs}
		}
	}

	entries = append(entries, s.entry(op, RoleResponses, op.Name+"Responses", genericFragment("Status", statuses, cases)))
	return entries, nil
}

// contentTypes returns the content types with the default one first.
func (s *Service) contentTypes(content map[string]any) []string {
	keys := sortedKeys(content)
	for i, key := range keys {
		if key == s.defaultContentType && i > 0 {
			copy(keys[1:i+1], keys[:i])
			keys[0] = key
			break
		}
	}
	return keys
}

// contentSuffixes maps each content type to its name suffix. The default
// content type has none; others use the subtype, or the whole content type
// when two subtypes collide.
// application/xml -> Xml, text/plain -> Plain.
func contentSuffixes(types []string, defaultType string) map[string]string {
	suffixes := make(map[string]string, len(types))
	used := map[string]int{}
	for _, contentType := range types {
		if contentType == defaultType {
			continue
		}
		used[subtypeSuffix(contentType)]++
	}
	for _, contentType := range types {
		if contentType == defaultType {
			suffixes[contentType] = ""
			continue
		}
		suffix := subtypeSuffix(contentType)
		if used[suffix] > 1 || suffix == "" {
			suffix = naming.ModelName(contentType)
		}
		suffixes[contentType] = suffix
	}
	return suffixes
}

func subtypeSuffix(contentType string) string {
	subtype := contentType
	if i := strings.IndexByte(subtype, '/'); i >= 0 {
		subtype = subtype[i+1:]
	}
	if i := strings.IndexByte(subtype, ';'); i >= 0 {
		subtype = subtype[:i]
	}
	return naming.ToPascalCase(subtype)
}

// statusSuffix: 200 -> "", default -> Default, 4XX -> 4XX.
func statusSuffix(status string) string {
	switch {
	case status == "200":
		return ""
	case strings.EqualFold(status, "default"):
		return "Default"
	default:
		return strings.ToUpper(status)
	}
}

// sortStatuses orders status codes ascending with "default" last.
func sortStatuses(responses map[string]*openapi3.ResponseRef) []string {
	statuses := make([]string, 0, len(responses))
	for status := range responses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		di, dj := strings.EqualFold(statuses[i], "default"), strings.EqualFold(statuses[j], "default")
		if di != dj {
			return dj
		}
		return statuses[i] < statuses[j]
	})
	return statuses
}

func genericFragment(parameter string, order []string, cases map[string]any) map[string]any {
	list := make([]any, len(order))
	for i, key := range order {
		list[i] = key
	}
	return map[string]any{
		model.GenericExtension: map[string]any{
			"parameter": parameter,
			"order":     list,
			"cases":     cases,
		},
	}
}
