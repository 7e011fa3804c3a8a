package gen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/griffnb/core-typegen/internal/orchestrator"
	"github.com/griffnb/core-typegen/internal/render"
)

var headerTemplate = template.Must(template.New("header").Parse(
	`// Code generated by core-typegen{{ if .Source }} from {{ .Source }}{{ end }}. DO NOT EDIT.
{{- if .Title }}
// {{ .Title }}{{ if .Version }} {{ .Version }}{{ end }}
{{- end }}

`))

// Manifest describes the models generated for one document.
type Manifest struct {
	Source      string                   `json:"source,omitempty"`
	Title       string                   `json:"title,omitempty"`
	Version     string                   `json:"version,omitempty"`
	Models      map[string]ManifestModel `json:"models"`
	EntryPoints map[string][]string      `json:"entryPoints,omitempty"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// ManifestModel is one model in a manifest.
type ManifestModel struct {
	Kind         string   `json:"kind"`
	Ref          string   `json:"ref,omitempty"`
	Text         string   `json:"text"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func (g *Gen) writeTypeScript(config *Config, result *orchestrator.Result, files *fileSet) error {
	header, err := fileHeader(result)
	if err != nil {
		return err
	}
	files.add(config.TypesFile, []byte(header+render.File(result.Models)))
	return nil
}

func (g *Gen) writeSplit(_ *Config, result *orchestrator.Result, files *fileSet) error {
	header, err := fileHeader(result)
	if err != nil {
		return err
	}
	for _, m := range result.Models {
		files.add(m.Name+".ts", []byte(header+render.Module(m)))
	}
	files.add("index.ts", []byte(header+render.Index(result.Models)))
	return nil
}

func (g *Gen) writeJSONManifest(_ *Config, result *orchestrator.Result, files *fileSet) error {
	b, err := g.jsonIndent(newManifest(result))
	if err != nil {
		return err
	}
	files.add("manifest.json", append(b, '\n'))
	return nil
}

func (g *Gen) writeYAMLManifest(_ *Config, result *orchestrator.Result, files *fileSet) error {
	b, err := g.json(newManifest(result))
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}
	files.add("manifest.yaml", y)
	return nil
}

func newManifest(result *orchestrator.Result) *Manifest {
	m := &Manifest{
		Source:      sourceName(result),
		Models:      make(map[string]ManifestModel, len(result.Models)),
		EntryPoints: result.EntryPoints,
	}
	if api := result.Document.API; api != nil && api.Info != nil {
		m.Title = api.Info.Title
		m.Version = api.Info.Version
	}
	for _, model := range result.Models {
		m.Models[model.Name] = ManifestModel{
			Kind:         model.Kind,
			Ref:          model.Ref,
			Text:         model.Text,
			Dependencies: model.Dependencies,
		}
	}
	for _, w := range result.Warnings {
		m.Warnings = append(m.Warnings, w.String())
	}
	sort.Strings(m.Warnings)
	return m
}

func fileHeader(result *orchestrator.Result) (string, error) {
	data := struct {
		Source  string
		Title   string
		Version string
	}{
		Source: sourceName(result),
	}
	if api := result.Document.API; api != nil && api.Info != nil {
		data.Title = titleCase(api.Info.Title)
		data.Version = api.Info.Version
	}

	var b bytes.Buffer
	if err := headerTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func sourceName(result *orchestrator.Result) string {
	if result.Document.Path == "" {
		return ""
	}
	return filepath.Base(result.Document.Path)
}

// titleCase upper-cases the first letter of each word of a document title,
// leaving the rest as written.
func titleCase(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	return cases.Title(language.English, cases.NoLower).String(title)
}
