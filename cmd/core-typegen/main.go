package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-typegen/internal/console"
	"github.com/griffnb/core-typegen/internal/gen"
)

const (
	inputFlag              = "input"
	excludeFlag            = "exclude"
	parseExtensionFlag     = "parseExtension"
	outputFlag             = "output"
	outputTypesFlag        = "outputTypes"
	typesFileFlag          = "typesFile"
	overridesFileFlag      = "overridesFile"
	configFlag             = "config"
	componentsOnlyFlag     = "componentsOnly"
	inlineStringEnumsFlag  = "inlineStringEnums"
	enumStyleFlag          = "enumStyle"
	defaultContentTypeFlag = "defaultContentType"
	checkFlag              = "check"
	quietFlag              = "quiet"
	debugFlag              = "debug"
)

// configKeys maps flags to their key in the config file.
var configKeys = map[string]string{
	"inputs":             inputFlag,
	"exclude":            excludeFlag,
	"parseExtension":     parseExtensionFlag,
	"output":             outputFlag,
	"outputTypes":        outputTypesFlag,
	"typesFile":          typesFileFlag,
	"overridesFile":      overridesFileFlag,
	"componentsOnly":     componentsOnlyFlag,
	"inlineStringEnums":  inlineStringEnumsFlag,
	"enumStyle":          enumStyleFlag,
	"defaultContentType": defaultContentTypeFlag,
}

var commonFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    inputFlag,
		Aliases: []string{"i"},
		Value:   "./openapi.yaml",
		Usage:   "OpenAPI documents or directories to convert, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories when searching input directories, comma separated",
	},
	&cli.StringFlag{
		Name:  parseExtensionFlag,
		Value: ".json,.yaml,.yml",
		Usage: "File extensions read from input directories, comma separated",
	},
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Value:   gen.DefaultConfigFile,
		Usage:   "YAML file supplying defaults for flags not given on the command line",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

var generateFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./types",
		Usage:   "Output directory for all the generated files",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "ts",
		Usage:   "Output types of generated files like ts,split,manifest,yaml",
	},
	&cli.StringFlag{
		Name:  typesFileFlag,
		Value: gen.DefaultTypesFile,
		Usage: "File name of the single-file output",
	},
	&cli.StringFlag{
		Name:  overridesFileFlag,
		Value: gen.DefaultOverridesFile,
		Usage: "File to read global type overrides from.",
	},
	&cli.BoolFlag{
		Name:  componentsOnlyFlag,
		Usage: "Only convert components.schemas, skip operation parameters and bodies",
	},
	&cli.BoolFlag{
		Name:  inlineStringEnumsFlag,
		Usage: "Render string enums as inline literal unions where they are used",
	},
	&cli.StringFlag{
		Name:  enumStyleFlag,
		Value: "enum",
		Usage: "Declare enums as TypeScript 'enum' or literal 'union' types",
	},
	&cli.StringFlag{
		Name:  defaultContentTypeFlag,
		Value: "application/json",
		Usage: "Content type whose request and response models get no suffix",
	},
	&cli.BoolFlag{
		Name:  checkFlag,
		Usage: "Fail instead of writing when generated files are out of date",
	},
}, commonFlags...)

func setupLogging(ctx *cli.Context) *log.Logger {
	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		console.Logger.Quiet = true
		logger = log.New(io.Discard, "", log.LstdFlags)
	}
	return logger
}

func buildConfig(ctx *cli.Context) (*gen.Config, error) {
	config := &gen.Config{
		Debugger:           setupLogging(ctx),
		Inputs:             ctx.String(inputFlag),
		Excludes:           ctx.String(excludeFlag),
		ParseExtension:     ctx.String(parseExtensionFlag),
		OutputDir:          ctx.String(outputFlag),
		OutputTypes:        strings.Split(ctx.String(outputTypesFlag), ","),
		TypesFile:          ctx.String(typesFileFlag),
		OverridesFile:      ctx.String(overridesFileFlag),
		ComponentsOnly:     ctx.Bool(componentsOnlyFlag),
		InlineStringEnums:  ctx.Bool(inlineStringEnumsFlag),
		EnumStyle:          ctx.String(enumStyleFlag),
		DefaultContentType: ctx.String(defaultContentTypeFlag),
		Check:              ctx.Bool(checkFlag),
	}

	configFile := ctx.String(configFlag)
	fc, err := gen.LoadFileConfig(configFile, !ctx.IsSet(configFlag))
	if err != nil {
		return nil, err
	}
	fc.Apply(config, func(key string) bool {
		return ctx.IsSet(configKeys[key])
	})

	if len(config.OutputTypes) == 0 {
		return nil, fmt.Errorf("no output types specified")
	}
	return config, nil
}

func generateAction(ctx *cli.Context) error {
	config, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	return gen.New().Build(config)
}

func inspectAction(ctx *cli.Context) error {
	config, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	return gen.New().Inspect(config, os.Stdout)
}

func main() {
	app := cli.NewApp()
	app.Name = "core-typegen"
	app.Version = gen.Version
	app.Usage = "Generate TypeScript declarations from OpenAPI 3 documents."
	app.Commands = []*cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Generate TypeScript declarations",
			Action:  generateAction,
			Flags:   generateFlags,
		},
		{
			Name:   "inspect",
			Usage:  "Print how each component schema is classified",
			Action: inspectAction,
			Flags:  commonFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
