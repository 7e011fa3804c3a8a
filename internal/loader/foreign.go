package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileLoader loads foreign documents named by relative or absolute file
// paths. Relative locators are taken from the directory of the root
// document. Decoded documents are kept for the loader's lifetime.
type FileLoader struct {
	baseDir string

	mu    sync.Mutex
	cache map[string]any
}

// NewFileLoader creates a loader resolving relative locators against baseDir.
func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{
		baseDir: baseDir,
		cache:   make(map[string]any),
	}
}

// Load implements resolver.ForeignLoader.
func (l *FileLoader) Load(locator string) (any, error) {
	if strings.Contains(locator, "://") {
		return nil, fmt.Errorf("remote document %q is not supported", locator)
	}

	path := filepath.FromSlash(locator)
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if doc, ok := l.cache[path]; ok {
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", locator, err)
	}
	l.cache[path] = doc
	return doc, nil
}
