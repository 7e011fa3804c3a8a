package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fileSet collects generated files before they are checked or written.
type fileSet struct {
	dir   string
	files map[string][]byte
}

func newFileSet() *fileSet {
	return &fileSet{files: make(map[string][]byte)}
}

// add records name relative to the current directory.
func (f *fileSet) add(name string, data []byte) {
	f.files[filepath.Join(f.dir, name)] = data
}

func (f *fileSet) paths() []string {
	paths := make([]string, 0, len(f.files))
	for path := range f.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// check returns the files whose content on disk differs.
func (f *fileSet) check() ([]string, error) {
	var stale []string
	for _, path := range f.paths() {
		existing, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			stale = append(stale, path)
			continue
		}
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(existing, f.files[path]) {
			stale = append(stale, path)
		}
	}
	return stale, nil
}

// commit writes every changed file and returns the paths written, sorted.
func (f *fileSet) commit() ([]string, error) {
	var (
		mu      sync.Mutex
		written []string
	)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for path, data := range f.files {
		g.Go(func() error {
			changed, err := writeIfChanged(path, data)
			if err != nil {
				return err
			}
			if changed {
				mu.Lock()
				written = append(written, path)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(written)
	return written, nil
}

// writeIfChanged replaces path through a temporary file in the same
// directory, leaving identical files untouched.
func writeIfChanged(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return false, err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, err
	}
	return true, nil
}
