package orchestrator

import (
	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/model"
	"github.com/griffnb/core-typegen/internal/render"
)

// builder collects the root set of a run. A reference whose name was taken
// by a different declaration, such as a component that is only a $ref or an
// entry point answered by a shared component, gets an alias so the name
// stays importable.
type builder struct {
	ctx       *model.Context
	skips     map[string]struct{}
	overrides map[string]string
	roots     []model.Container
	aliases   []render.Model
	byRef     map[string][]string
}

func (b *builder) add(ref string) error {
	container, err := b.ctx.FindOrCreate(ref)
	if err != nil {
		return err
	}
	canonical := domain.CanonicalRef(ref)
	name, _ := b.ctx.Names().Lookup(canonical)

	var kept model.Container
	var declared []string
	for _, desc := range container.Named() {
		if _, skip := b.skips[desc.ModelName()]; skip {
			continue
		}
		kept = append(kept, desc)
		declared = append(declared, desc.ModelName())
	}
	if len(kept) > 0 {
		b.roots = append(b.roots, kept)
	}

	if name != "" && !contains(declared, name) {
		_, skip := b.skips[name]
		_, replaced := b.overrides[name]
		if !skip && !replaced {
			alias, err := aliasModel(name, canonical, container)
			if err != nil {
				return err
			}
			b.aliases = append(b.aliases, alias)
			declared = []string{name}
		}
	}

	if b.byRef == nil {
		b.byRef = map[string][]string{}
	}
	b.byRef[canonical] = declared
	return nil
}

func (b *builder) declared(ref string) []string {
	return b.byRef[domain.CanonicalRef(ref)]
}

// aliasModel declares name as the inline form of container.
func aliasModel(name, ref string, container model.Container) (render.Model, error) {
	named := container.Named()
	if len(container) == 1 && len(named) == 1 {
		return render.Alias(name, named[0].ModelName(), ref), nil
	}

	deps := model.NewDependencies()
	text, err := container.Inline(deps)
	if err != nil {
		return render.Model{}, err
	}
	m := render.Alias(name, text, ref)
	m.Dependencies = deps.Names()
	return m, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
