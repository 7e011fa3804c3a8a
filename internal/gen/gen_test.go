package gen

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../testing/testdata"

var (
	widgetsDoc = filepath.Join(testdata, "widgets.yaml")
	cyclicDoc  = filepath.Join(testdata, "cyclic.json")
	todoDoc    = filepath.Join(testdata, "todo.json")
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestGen_Build(t *testing.T) {
	config := &Config{
		Inputs:      widgetsDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts", "split", "manifest", "yaml"},
	}
	require.NoError(t, New().Build(config))

	expectedFiles := []string{
		filepath.Join(config.OutputDir, "types.ts"),
		filepath.Join(config.OutputDir, "index.ts"),
		filepath.Join(config.OutputDir, "Widget.ts"),
		filepath.Join(config.OutputDir, "GetWidgetsIdResponse.ts"),
		filepath.Join(config.OutputDir, "manifest.json"),
		filepath.Join(config.OutputDir, "manifest.yaml"),
	}
	for _, expectedFile := range expectedFiles {
		_, err := os.Stat(expectedFile)
		require.NoError(t, err, expectedFile)
	}

	t.Run("single file", func(t *testing.T) {
		types := readFile(t, filepath.Join(config.OutputDir, "types.ts"))
		assert.True(t, strings.HasPrefix(types, "// Code generated by core-typegen from widgets.yaml. DO NOT EDIT.\n// Widgets 1.0.0\n\n"))
		assert.Contains(t, types, "/** The widget */\nexport interface GetWidgetsIdResponse {\n  id: number;\n  name?: string;\n}\n")
		// dependencies come before dependents
		assert.Less(t, strings.Index(types, "export interface NewWidget"), strings.Index(types, "export type CreateWidgetRequest"))
		assert.Less(t, strings.Index(types, "export type Length"), strings.Index(types, "export interface Dimensions"))
	})

	t.Run("split files", func(t *testing.T) {
		widget := readFile(t, filepath.Join(config.OutputDir, "Widget.ts"))
		assert.Contains(t, widget, "import type { Dimensions } from \"./Dimensions\";\n")
		assert.Contains(t, widget, "import type { Status } from \"./Status\";\n")

		index := readFile(t, filepath.Join(config.OutputDir, "index.ts"))
		assert.Contains(t, index, "export * from \"./Widget\";\n")
	})

	t.Run("manifest", func(t *testing.T) {
		manifest := readFile(t, filepath.Join(config.OutputDir, "manifest.json"))
		assert.Contains(t, manifest, `"entryPoints"`)
		assert.Contains(t, manifest, `"GetWidgetsIdResponse"`)
		assert.Contains(t, manifest, `"title": "Widgets"`)

		yamlManifest := readFile(t, filepath.Join(config.OutputDir, "manifest.yaml"))
		assert.Contains(t, yamlManifest, "entryPoints:")
		assert.Contains(t, yamlManifest, "source: widgets.yaml")
	})
}

func TestGen_SpecificOutputTypes(t *testing.T) {
	config := &Config{
		Inputs:      cyclicDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts", "unknownType"},
		TypesFile:   "models.ts",
	}
	assert.NoError(t, New().Build(config))

	tt := []struct {
		expectedFile string
		shouldExist  bool
	}{
		{filepath.Join(config.OutputDir, "models.ts"), true},
		{filepath.Join(config.OutputDir, "types.ts"), false},
		{filepath.Join(config.OutputDir, "manifest.json"), false},
	}
	for _, tc := range tt {
		_, err := os.Stat(tc.expectedFile)
		if tc.shouldExist {
			require.NoError(t, err)
		} else {
			require.Error(t, err)
			require.True(t, errors.Is(err, os.ErrNotExist))
		}
	}
}

func TestGen_MultipleDocuments(t *testing.T) {
	config := &Config{
		Inputs:      cyclicDoc + "," + todoDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts"},
	}
	require.NoError(t, New().Build(config))

	cyclic := readFile(t, filepath.Join(config.OutputDir, "cyclic", "types.ts"))
	assert.Contains(t, cyclic, "export type Tree = Array<Tree>;")
	assert.NotContains(t, cyclic, "TodoItem")

	todo := readFile(t, filepath.Join(config.OutputDir, "todo", "types.ts"))
	assert.Contains(t, todo, "export type TodoItem_1 = string;")
}

func TestGen_Check(t *testing.T) {
	config := &Config{
		Inputs:      cyclicDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts", "manifest"},
	}
	require.NoError(t, New().Build(config))

	t.Run("up to date", func(t *testing.T) {
		config.Check = true
		assert.NoError(t, New().Build(config))
	})

	t.Run("stale file", func(t *testing.T) {
		config.Check = true
		path := filepath.Join(config.OutputDir, "types.ts")
		require.NoError(t, os.WriteFile(path, []byte("// edited\n"), 0o644))

		err := New().Build(config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 generated file(s) are out of date")
		assert.Equal(t, "// edited\n", readFile(t, path), "check mode never writes")
	})

	t.Run("missing file", func(t *testing.T) {
		config.Check = true
		require.NoError(t, os.Remove(filepath.Join(config.OutputDir, "manifest.json")))

		assert.Error(t, New().Build(config))
	})
}

func TestGen_writeIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "a.ts")

	changed, err := writeIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = writeIfChanged(path, []byte("a"))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = writeIfChanged(path, []byte("b"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "b", readFile(t, path))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestGen_InputIsNotExist(t *testing.T) {
	config := &Config{
		Inputs:      "../does-not-exist.yaml",
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts"},
	}
	assert.EqualError(t, New().Build(config), "input: ../does-not-exist.yaml does not exist")
}

func TestGen_NoInputs(t *testing.T) {
	assert.EqualError(t, New().Build(&Config{OutputTypes: []string{"ts"}}), "no input documents specified")
}

func TestGen_EnumStyle(t *testing.T) {
	t.Run("union", func(t *testing.T) {
		config := &Config{
			Inputs:      widgetsDoc,
			OutputDir:   t.TempDir(),
			OutputTypes: []string{"ts"},
			EnumStyle:   "Union",
		}
		require.NoError(t, New().Build(config))
		assert.Contains(t, readFile(t, filepath.Join(config.OutputDir, "types.ts")), "export type Status = \"active\" | \"retired\";")
	})

	t.Run("unsupported", func(t *testing.T) {
		config := &Config{Inputs: widgetsDoc, OutputDir: t.TempDir(), EnumStyle: "const"}
		assert.EqualError(t, New().Build(config), "not supported const enumStyle")
	})
}

func TestGen_jsonToYAML(t *testing.T) {
	config := &Config{
		Inputs:      cyclicDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"yaml"},
	}

	gen := New()
	gen.jsonToYAML = func(data []byte) ([]byte, error) {
		return nil, fmt.Errorf("yaml error")
	}

	assert.EqualError(t, gen.Build(config), "cannot covert json to yaml error: yaml error")
}

func TestGen_parseOverrides(t *testing.T) {
	testCases := []struct {
		Name          string
		Data          string
		Expected      map[string]string
		ExpectedError error
	}{
		{
			Name: "replace",
			Data: `replace Timestamp Date`,
			Expected: map[string]string{
				"Timestamp": "Date",
			},
		},
		{
			Name: "skip",
			Data: `skip InternalState`,
			Expected: map[string]string{
				"InternalState": "",
			},
		},
		{
			Name: "comment",
			Data: `// this is a comment
			replace foo bar`,
			Expected: map[string]string{
				"foo": "bar",
			},
		},
		{
			Name: "ignore whitespace",
			Data: `

			replace foo bar`,
			Expected: map[string]string{
				"foo": "bar",
			},
		},
		{
			Name:          "unknown directive",
			Data:          `foo`,
			ExpectedError: fmt.Errorf("could not parse override: 'foo'"),
		},
		{
			Name:          "too many fields",
			Data:          `replace a b c`,
			ExpectedError: fmt.Errorf("could not parse override: 'replace a b c'"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			overrides, err := parseOverrides(strings.NewReader(tc.Data))
			assert.Equal(t, tc.Expected, overrides)
			assert.Equal(t, tc.ExpectedError, err)
		})
	}
}

func TestGen_TypeOverridesFile(t *testing.T) {
	dir := t.TempDir()
	overridesFile := filepath.Join(dir, "overrides")
	require.NoError(t, os.WriteFile(overridesFile, []byte("// cyclic\nreplace Pong RemotePong\nskip Tree\n"), 0o644))

	t.Run("applies overrides", func(t *testing.T) {
		config := &Config{
			Inputs:        cyclicDoc,
			OutputDir:     filepath.Join(dir, "out"),
			OutputTypes:   []string{"ts"},
			OverridesFile: overridesFile,
		}
		require.NoError(t, New().Build(config))

		types := readFile(t, filepath.Join(config.OutputDir, "types.ts"))
		assert.Contains(t, types, "pong?: RemotePong;")
		assert.NotContains(t, types, "export interface Pong")
		assert.NotContains(t, types, "export type Tree")
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		config := &Config{
			Inputs:        cyclicDoc,
			OutputDir:     filepath.Join(dir, "default"),
			OutputTypes:   []string{"ts"},
			OverridesFile: DefaultOverridesFile,
		}
		assert.NoError(t, New().Build(config))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		config := &Config{
			Inputs:        cyclicDoc,
			OutputDir:     filepath.Join(dir, "explicit"),
			OverridesFile: filepath.Join(dir, "nope"),
		}
		err := New().Build(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not open overrides file")
	})
}

func TestGen_Debugger(t *testing.T) {
	var buf bytes.Buffer
	config := &Config{
		Inputs:      cyclicDoc,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"ts"},
		Debugger:    log.New(&buf, "", log.LstdFlags),
	}
	assert.NoError(t, New().Build(config))

	assert.Contains(t, buf.String(), "loading document")
}

func TestGen_Inspect(t *testing.T) {
	var buf bytes.Buffer

	err := New().Inspect(&Config{Inputs: cyclicDoc}, &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"SCHEMA", "RULE", "KIND"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Node", "object", "object"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Tree", "array", "array"}, strings.Fields(lines[4]))
}
