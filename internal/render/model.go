package render

import (
	"sort"

	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/model"
)

// Model is one rendered declaration.
type Model struct {
	Name         string           `json:"name"`
	Kind         string           `json:"kind"`
	Ref          string           `json:"ref,omitempty"`
	Text         string           `json:"text"`
	Dependencies []string         `json:"dependencies,omitempty"`
	Descriptor   model.Descriptor `json:"-"`
}

// Collect renders roots and returns the models sorted by name.
func Collect(roots []model.Container) ([]Model, error) {
	var models []Model
	err := RenderAll(roots, func(desc model.Descriptor, text string, deps []model.Descriptor) error {
		m := Model{
			Name:       desc.ModelName(),
			Kind:       desc.Kind().String(),
			Ref:        desc.OriginalRef(),
			Text:       text,
			Descriptor: desc,
		}
		for _, dep := range deps {
			if dep != desc {
				m.Dependencies = append(m.Dependencies, dep.ModelName())
			}
		}
		sort.Strings(m.Dependencies)
		models = append(models, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})
	return models, nil
}

// Alias is a model declaring name as another name for target.
func Alias(name, target, ref string) Model {
	return Model{
		Name:         name,
		Kind:         domain.KindAny.String(),
		Ref:          ref,
		Text:         "export type " + name + " = " + target + ";",
		Dependencies: []string{target},
	}
}
