package gen

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/core-typegen/internal/console"
	"github.com/griffnb/core-typegen/internal/domain"
	"github.com/griffnb/core-typegen/internal/loader"
	"github.com/griffnb/core-typegen/internal/model"
	"github.com/griffnb/core-typegen/internal/orchestrator"
)

var open = os.Open

// Version of the generator.
const Version = "v0.1.0"

// DefaultOverridesFile is the location typegen will look for type overrides.
const DefaultOverridesFile = ".typegen"

// DefaultTypesFile is the single-file output name.
const DefaultTypesFile = "types.ts"

type genTypeWriter func(*Config, *orchestrator.Result, *fileSet) error

// Gen presents a generate tool for typegen.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         domain.Debugger
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      log.New(os.Stdout, "", log.LstdFlags),
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"ts":       gen.writeTypeScript,
		"split":    gen.writeSplit,
		"manifest": gen.writeJSONManifest,
		"json":     gen.writeJSONManifest,
		"yaml":     gen.writeYAMLManifest,
		"yml":      gen.writeYAMLManifest,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	Debugger domain.Debugger

	// Inputs are the documents or directories to convert, comma separated
	Inputs string

	// excludes dirs when searching input directories, comma separated
	Excludes string

	// file extensions picked up from input directories, comma separated
	ParseExtension string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// TypesFile names the single-file output, types.ts by default
	TypesFile string

	// OverridesFile defines global type overrides.
	OverridesFile string

	// ComponentsOnly converts components.schemas without operation entry points
	ComponentsOnly bool

	// InlineStringEnums renders string enums used by properties as literal unions
	InlineStringEnums bool

	// EnumStyle is "enum" or "union"
	EnumStyle string

	// DefaultContentType is the content type whose models get no suffix
	DefaultContentType string

	// Check fails instead of writing when generated files differ from disk
	Check bool
}

// Build converts every input document and writes the requested outputs.
func (g *Gen) Build(config *Config) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}
	if config.TypesFile == "" {
		config.TypesFile = DefaultTypesFile
	}

	inputs := splitList(config.Inputs)
	if len(inputs) == 0 {
		return fmt.Errorf("no input documents specified")
	}
	for _, input := range inputs {
		if _, err := os.Stat(input); os.IsNotExist(err) {
			return fmt.Errorf("input: %s does not exist", input)
		}
	}

	enumStyle := model.EnumStyle(strings.ToLower(config.EnumStyle))
	switch enumStyle {
	case "":
		enumStyle = model.EnumStyleEnum
	case model.EnumStyleEnum, model.EnumStyleUnion:
	default:
		return fmt.Errorf("not supported %s enumStyle", config.EnumStyle)
	}

	var overrides map[string]string

	if config.OverridesFile != "" {
		overridesFile, err := open(config.OverridesFile)
		if err != nil {
			// Don't bother reporting if the default file is missing; assume there are no overrides
			if !(config.OverridesFile == DefaultOverridesFile && os.IsNotExist(err)) {
				return fmt.Errorf("could not open overrides file: %w", err)
			}
		} else {
			defer overridesFile.Close()
			console.Logger.Debug("Using overrides from %s", config.OverridesFile)

			overrides, err = parseOverrides(overridesFile)
			if err != nil {
				return err
			}
		}
	}
	replace, skip := splitOverrides(overrides)

	console.Logger.Debug("Generate TypeScript declarations....")

	docs, err := loader.NewService(
		loader.WithExcludes(parseExcludes(config.Excludes)),
		loader.WithParseExtensions(parseExtensions(config.ParseExtension)),
		loader.WithDebugger(g.debug),
	).LoadPaths(inputs)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", config.Inputs)
	}

	orc := orchestrator.New(&orchestrator.Config{
		ComponentsOnly:     config.ComponentsOnly,
		InlineStringEnums:  config.InlineStringEnums,
		EnumStyle:          enumStyle,
		DefaultContentType: config.DefaultContentType,
		Overrides:          replace,
		Skips:              skip,
		Debug:              g.debug,
	})

	results, err := orc.RunAll(docs)
	if err != nil {
		return err
	}

	files := newFileSet()
	for _, result := range results {
		dir := config.OutputDir
		if len(results) > 1 {
			dir = filepath.Join(config.OutputDir, result.Document.Name)
		}
		files.dir = dir

		for _, outputType := range config.OutputTypes {
			outputType = strings.ToLower(strings.TrimSpace(outputType))
			if typeWriter, ok := g.outputTypeMap[outputType]; ok {
				if err := typeWriter(config, result, files); err != nil {
					return err
				}
			} else {
				log.Printf("output type '%s' not supported", outputType)
			}
		}
		console.Logger.Info("$Green{converted} %s: %d models, %d entry points", displayPath(result), len(result.Models), len(result.EntryPoints))
	}

	if config.Check {
		stale, err := files.check()
		if err != nil {
			return err
		}
		if len(stale) > 0 {
			for _, file := range stale {
				console.Logger.Error("out of date: %s", file)
			}
			return fmt.Errorf("%d generated file(s) are out of date", len(stale))
		}
		console.Logger.Info("$Green{up to date}")
		return nil
	}

	written, err := files.commit()
	if err != nil {
		return err
	}
	for _, file := range written {
		console.Logger.Debug("create %s", file)
	}
	return nil
}

func displayPath(result *orchestrator.Result) string {
	if result.Document.Path == "" {
		return result.Document.Name
	}
	return result.Document.Path
}

// Read and parse the overrides file.
func parseOverrides(r io.Reader) (map[string]string, error) {
	overrides := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 1 && trimmed[0:2] == "//" {
			continue
		}

		parts := strings.Fields(line)

		switch len(parts) {
		case 0:
			// only whitespace
			continue
		case 2:
			// either a skip or malformed
			if parts[0] != "skip" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = ""
		case 3:
			// either a replace or malformed
			if parts[0] != "replace" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = parts[2]
		default:
			return nil, fmt.Errorf("could not parse override: '%s'", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}

	return overrides, nil
}

// splitOverrides separates replacements from skips.
func splitOverrides(overrides map[string]string) (map[string]string, map[string]struct{}) {
	replace := make(map[string]string)
	skip := make(map[string]struct{})
	for name, external := range overrides {
		if external == "" {
			skip[name] = struct{}{}
			continue
		}
		replace[name] = external
	}
	return replace, skip
}

// parseExcludes converts comma-separated exclude string to map.
func parseExcludes(excludes string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, exclude := range splitList(excludes) {
		result[exclude] = struct{}{}
		if abs, err := filepath.Abs(exclude); err == nil {
			result[abs] = struct{}{}
		}
	}
	return result
}

// parseExtensions converts a comma-separated extension string to a slice,
// falling back to the loader defaults when empty.
func parseExtensions(extensions string) []string {
	list := splitList(extensions)
	if len(list) == 0 {
		return []string{".json", ".yaml", ".yml"}
	}
	return list
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
