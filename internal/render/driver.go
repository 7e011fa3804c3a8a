// Package render walks converted descriptors, renders every named model
// exactly once and lays the results out as TypeScript source.
package render

import (
	"github.com/griffnb/core-typegen/internal/model"
)

// Visitor receives each rendered model together with the named descriptors
// its declaration references.
type Visitor func(desc model.Descriptor, text string, deps []model.Descriptor) error

// RenderAll renders every root descriptor, then every named descriptor
// reachable through the recorded dependencies, calling visit once per
// descriptor identity.
func RenderAll(roots []model.Container, visit Visitor) error {
	d := &driver{
		visited: make(map[model.Descriptor]bool),
		visit:   visit,
	}
	for _, container := range roots {
		for _, desc := range container {
			if err := d.render(desc); err != nil {
				return err
			}
		}
	}
	return nil
}

type driver struct {
	visited map[model.Descriptor]bool
	visit   Visitor
}

func (d *driver) render(desc model.Descriptor) error {
	if d.visited[desc] {
		return nil
	}
	d.visited[desc] = true

	deps := model.NewDependencies()
	text, err := desc.Render(deps, true)
	if err != nil {
		return err
	}
	if err := d.visit(desc, text, deps.List()); err != nil {
		return err
	}

	for _, dep := range deps.List() {
		if err := d.render(dep); err != nil {
			return err
		}
	}
	return nil
}
