package loader

import (
	"strings"

	"github.com/griffnb/core-typegen/internal/domain"
)

// Option is a functional option for configuring Service
type Option func(*Service)

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		excludes:   make(map[string]struct{}),
		extensions: []string{".json", ".yaml", ".yml"},
		debug:      domain.NoOpDebugger(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithExcludes sets directory exclusion patterns
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithParseExtensions sets the file extensions picked up when a directory is loaded
func WithParseExtensions(exts []string) Option {
	return func(s *Service) {
		s.extensions = s.extensions[:0]
		for _, ext := range exts {
			if ext = strings.TrimSpace(ext); ext != "" {
				if !strings.HasPrefix(ext, ".") {
					ext = "." + ext
				}
				s.extensions = append(s.extensions, strings.ToLower(ext))
			}
		}
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger domain.Debugger) Option {
	return func(s *Service) {
		s.debug = debugger
	}
}
