package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

// LoadPaths loads every document named by paths. A directory contributes
// each file with a parsed extension below it. Documents are returned in
// the order given, directory contents sorted by path.
func (s *Service) LoadPaths(paths []string) ([]*Document, error) {
	var docs []*Document
	seen := map[string]bool{}

	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %q, err: %w", p, err)
		}

		files := []string{absPath}
		if info.IsDir() {
			files, err = s.walkDirectory(absPath)
			if err != nil {
				return nil, err
			}
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			doc, err := s.Load(file)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	return docs, nil
}

// walkDirectory lists the document files below searchDir
func (s *Service) walkDirectory(searchDir string) ([]string, error) {
	var files []string
	err := filepath.Walk(searchDir, func(path string, f os.FileInfo, wError error) error {
		if wError != nil {
			return fmt.Errorf("failed to access path %q, err: %v", path, wError)
		}

		if err := s.shouldSkipDir(path, f); err != nil {
			return err
		}
		if f.IsDir() || s.shouldSkipFile(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Load reads and decodes one document file
func (s *Service) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.debug.Printf("loading document %s", path)

	doc, err := s.LoadBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// LoadBytes decodes a JSON or YAML document. path is only recorded.
func (s *Service) LoadBytes(path string, data []byte) (*Document, error) {
	jsonData, err := ToJSON(data)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("document root must be an object: %w", err)
	}
	version, _ := raw["openapi"].(string)
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("unsupported document version %q, expected openapi 3.x", version)
	}

	api := &openapi3.T{}
	if err := api.UnmarshalJSON(jsonData); err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}

	return &Document{
		Path: path,
		Name: documentName(path),
		Raw:  raw,
		API:  api,
	}, nil
}

// ToJSON converts YAML input to JSON and passes JSON input through.
func ToJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return trimmed, nil
	}
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return jsonData, nil
}

// Decode reads a JSON or YAML value into a generic tree.
func Decode(data []byte) (any, error) {
	jsonData, err := ToJSON(data)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(jsonData, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func documentName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// shouldSkipFile checks if a file should be skipped
func (s *Service) shouldSkipFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range s.extensions {
		if ext == allowed {
			return false
		}
	}
	return true
}

// shouldSkipDir checks if a directory should be skipped
func (s *Service) shouldSkipDir(path string, f os.FileInfo) error {
	if !f.IsDir() {
		return nil
	}

	if f.Name() == "node_modules" {
		return filepath.SkipDir
	}
	if len(f.Name()) > 1 && f.Name()[0] == '.' && f.Name() != ".." {
		return filepath.SkipDir
	}

	if s.excludes != nil {
		if _, ok := s.excludes[path]; ok {
			return filepath.SkipDir
		}
		if _, ok := s.excludes[f.Name()]; ok {
			return filepath.SkipDir
		}
	}

	return nil
}
