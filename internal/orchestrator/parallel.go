package orchestrator

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/griffnb/core-typegen/internal/loader"
)

// RunAll converts documents concurrently using an errgroup bounded by the
// number of CPUs. Results are sorted by document path so output does not
// depend on scheduling. Any failure discards every result.
func (s *Service) RunAll(docs []*loader.Document) ([]*Result, error) {
	var (
		mu      sync.Mutex
		results []*Result
	)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		g.Go(func() error {
			result, err := s.Run(doc)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", displayName(doc), err)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.Path < results[j].Document.Path
	})
	return results, nil
}

func displayName(doc *loader.Document) string {
	if doc.Path != "" {
		return doc.Path
	}
	return "document"
}
