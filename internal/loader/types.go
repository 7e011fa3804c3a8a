// Package loader reads OpenAPI documents from disk as both a raw generic tree,
// which references are resolved against, and a typed kin-openapi model used
// to walk operations.
package loader

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/griffnb/core-typegen/internal/domain"
)

// Service handles locating and decoding documents
type Service struct {
	excludes   map[string]struct{}
	extensions []string
	debug      domain.Debugger
}

// Document is one loaded API document
type Document struct {
	// Path the document was read from, "" for in-memory documents
	Path string

	// Name is the file name without extension, used for output subdirectories
	Name string

	// Raw is the decoded document tree
	Raw map[string]any

	// API is the typed view of the same document; references are left unresolved
	API *openapi3.T
}
