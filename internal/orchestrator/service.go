// Package orchestrator coordinates the services that turn one API document
// into rendered TypeScript models. Every run gets its own resolver, context
// and name registry, so runs over different documents share nothing.
package orchestrator

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/griffnb/core-typegen/internal/console"
	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/entrypoint"
	"github.com/griffnb/core-typegen/internal/loader"
	"github.com/griffnb/core-typegen/internal/model"
	"github.com/griffnb/core-typegen/internal/naming"
	"github.com/griffnb/core-typegen/internal/render"
	"github.com/griffnb/core-typegen/internal/resolver"
	"github.com/griffnb/core-typegen/internal/rules"
)

// Service runs conversions.
type Service struct {
	config *Config
}

// Config holds orchestrator configuration options.
type Config struct {
	// ComponentsOnly skips entry point synthesis
	ComponentsOnly     bool
	InlineStringEnums  bool
	EnumStyle          model.EnumStyle
	DefaultContentType string
	// Overrides maps model names to external types
	Overrides map[string]string
	// Skips lists model names left out of the root set
	Skips map[string]struct{}
	Debug domain.Debugger
	// Log receives warnings; console.Logger when nil
	Log *console.Log
}

// Result is the output of one run.
type Result struct {
	Document *loader.Document
	Models   []render.Model
	// EntryPoints maps each entry point name to the model names it resolves to
	EntryPoints map[string][]string
	Warnings    []domain.Warning
}

// New creates a new orchestrator service with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults for zero values
	if config.EnumStyle == "" {
		config.EnumStyle = model.EnumStyleEnum
	}
	if config.DefaultContentType == "" {
		config.DefaultContentType = entrypoint.DefaultContentType
	}
	if config.Overrides == nil {
		config.Overrides = make(map[string]string)
	}
	if config.Skips == nil {
		config.Skips = make(map[string]struct{})
	}
	if config.Debug == nil {
		config.Debug = domain.NoOpDebugger()
	}
	if config.Log == nil {
		config.Log = console.Logger
	}

	return &Service{config: config}
}

// Run converts one document. A failed run returns no partial output.
func (s *Service) Run(doc *loader.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document")
	}

	var resolverOptions []resolver.Option
	if doc.Path != "" {
		resolverOptions = append(resolverOptions, resolver.WithForeignLoader(loader.NewFileLoader(filepath.Dir(doc.Path))))
	}
	res := resolver.NewService(doc.Raw, resolverOptions...)

	dispatcher, err := rules.NewDispatcher(rules.WithDebugger(s.config.Debug))
	if err != nil {
		return nil, err
	}

	ctx := model.NewContext(res, dispatcher,
		model.WithOverrides(s.config.Overrides),
		model.WithInlineStringEnums(s.config.InlineStringEnums),
		model.WithEnumStyle(s.config.EnumStyle),
	)

	b := &builder{ctx: ctx, skips: s.config.Skips, overrides: s.config.Overrides}

	for _, name := range componentNames(doc.Raw) {
		if s.skipped(name) {
			s.config.Debug.Printf("skipping component %s", name)
			continue
		}
		if err := b.add(domain.ComponentRef(name)); err != nil {
			return nil, err
		}
	}

	entryPoints := map[string][]string{}
	if !s.config.ComponentsOnly {
		entries, err := entrypoint.NewService(doc.API, res,
			entrypoint.WithDebugger(s.config.Debug),
			entrypoint.WithDefaultContentType(s.config.DefaultContentType),
		).Synthesize()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			res.Mount(e.Ref, e.Fragment)
		}
		for _, e := range entries {
			if _, skip := s.config.Skips[e.Name]; skip {
				continue
			}
			if err := b.add(e.Ref); err != nil {
				return nil, fmt.Errorf("%s: %w", e.Operation, err)
			}
			if names := b.declared(e.Ref); len(names) > 0 {
				entryPoints[e.Name] = names
			}
		}
	}

	models, err := render.Collect(b.roots)
	if err != nil {
		return nil, err
	}
	models = append(models, b.aliases...)
	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})

	warnings := ctx.Warnings()
	for _, w := range warnings {
		s.config.Log.Warn("%s", w.String())
	}

	return &Result{
		Document:    doc,
		Models:      models,
		EntryPoints: entryPoints,
		Warnings:    warnings,
	}, nil
}

func (s *Service) skipped(name string) bool {
	if _, ok := s.config.Skips[name]; ok {
		return true
	}
	_, ok := s.config.Skips[naming.ModelName(name)]
	return ok
}

func componentNames(raw map[string]any) []string {
	components, _ := raw["components"].(map[string]any)
	schemas, _ := components["schemas"].(map[string]any)
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
