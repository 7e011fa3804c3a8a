package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project config file read when present.
const DefaultConfigFile = ".typegen.yaml"

// FileConfig holds defaults read from a YAML config file. Pointer fields
// distinguish "unset" from false.
type FileConfig struct {
	Inputs             []string `yaml:"inputs"`
	Exclude            []string `yaml:"exclude"`
	ParseExtension     []string `yaml:"parseExtension"`
	Output             string   `yaml:"output"`
	OutputTypes        []string `yaml:"outputTypes"`
	TypesFile          string   `yaml:"typesFile"`
	OverridesFile      string   `yaml:"overridesFile"`
	ComponentsOnly     *bool    `yaml:"componentsOnly"`
	InlineStringEnums  *bool    `yaml:"inlineStringEnums"`
	EnumStyle          string   `yaml:"enumStyle"`
	DefaultContentType string   `yaml:"defaultContentType"`
}

// LoadFileConfig reads path. A missing file yields an empty config when
// optional is set.
func LoadFileConfig(path string, optional bool) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return fc, nil
}

// Apply copies file values into config for every field isSet reports as not
// given on the command line. isSet receives the config key.
func (fc *FileConfig) Apply(config *Config, isSet func(key string) bool) {
	if len(fc.Inputs) > 0 && !isSet("inputs") {
		config.Inputs = joinList(fc.Inputs)
	}
	if len(fc.Exclude) > 0 && !isSet("exclude") {
		config.Excludes = joinList(fc.Exclude)
	}
	if len(fc.ParseExtension) > 0 && !isSet("parseExtension") {
		config.ParseExtension = joinList(fc.ParseExtension)
	}
	if fc.Output != "" && !isSet("output") {
		config.OutputDir = fc.Output
	}
	if len(fc.OutputTypes) > 0 && !isSet("outputTypes") {
		config.OutputTypes = fc.OutputTypes
	}
	if fc.TypesFile != "" && !isSet("typesFile") {
		config.TypesFile = fc.TypesFile
	}
	if fc.OverridesFile != "" && !isSet("overridesFile") {
		config.OverridesFile = fc.OverridesFile
	}
	if fc.ComponentsOnly != nil && !isSet("componentsOnly") {
		config.ComponentsOnly = *fc.ComponentsOnly
	}
	if fc.InlineStringEnums != nil && !isSet("inlineStringEnums") {
		config.InlineStringEnums = *fc.InlineStringEnums
	}
	if fc.EnumStyle != "" && !isSet("enumStyle") {
		config.EnumStyle = fc.EnumStyle
	}
	if fc.DefaultContentType != "" && !isSet("defaultContentType") {
		config.DefaultContentType = fc.DefaultContentType
	}
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}
