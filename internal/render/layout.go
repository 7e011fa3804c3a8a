package render

import (
	"sort"
	"strings"
)

// Order returns models with dependencies before dependents. Ties and cycle
// entry points are broken alphabetically; models in a cycle keep a forward
// reference, which TypeScript type declarations accept.
func Order(models []Model) []Model {
	byName := make(map[string]Model, len(models))
	names := make([]string, 0, len(models))
	for _, m := range models {
		if _, dup := byName[m.Name]; !dup {
			names = append(names, m.Name)
		}
		byName[m.Name] = m
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	ordered := make([]Model, 0, len(names))

	var visit func(name string)
	visit = func(name string) {
		m, ok := byName[name]
		if !ok || state[name] != unvisited {
			return
		}
		state[name] = visiting
		deps := append([]string(nil), m.Dependencies...)
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}
		state[name] = done
		ordered = append(ordered, m)
	}

	for _, name := range names {
		visit(name)
	}
	return ordered
}

// File joins the ordered models into one source file body.
func File(models []Model) string {
	texts := make([]string, 0, len(models))
	for _, m := range Order(models) {
		texts = append(texts, m.Text)
	}
	if len(texts) == 0 {
		return ""
	}
	return strings.Join(texts, "\n\n") + "\n"
}

// Module renders one model as a standalone file with a type-only import per
// dependency.
func Module(m Model) string {
	var b strings.Builder
	for _, dep := range m.Dependencies {
		if dep == m.Name {
			continue
		}
		b.WriteString("import type { " + dep + " } from \"./" + dep + "\";\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(m.Text)
	b.WriteString("\n")
	return b.String()
}

// Index re-exports every model module, sorted by name.
func Index(models []Model) string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("export * from \"./" + name + "\";\n")
	}
	return b.String()
}
