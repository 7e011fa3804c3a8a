// Package rules classifies schema fragments into descriptor kinds.
//
// Each rule pairs a meta-schema describing the shape a fragment must have
// with the kind it produces. Rules are evaluated in order and the first
// match wins, so a fragment carrying both oneOf and type: object is a
// some-of, never an object. The last rule accepts any object.
package rules

import (
	"embed"

	"github.com/griffnb/core-typegen/internal/domain"
)

//go:embed metaschemas/*.json
var metaschemas embed.FS

// Rule is one (predicate, kind) pair.
type Rule struct {
	// Name identifies the rule and its meta-schema file.
	Name string
	Kind domain.Kind
}

// DefaultRules returns the rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "generic", Kind: domain.KindGeneric},
		{Name: "oneof", Kind: domain.KindSomeOf},
		{Name: "anyof", Kind: domain.KindSomeOf},
		{Name: "allof", Kind: domain.KindSomeOf},
		{Name: "enum", Kind: domain.KindEnum},
		{Name: "number", Kind: domain.KindNumber},
		{Name: "string", Kind: domain.KindString},
		{Name: "object", Kind: domain.KindObject},
		{Name: "array", Kind: domain.KindArray},
		{Name: "boolean", Kind: domain.KindBoolean},
		{Name: "null", Kind: domain.KindNull},
		{Name: "instance", Kind: domain.KindInstance},
		{Name: "any", Kind: domain.KindAny},
	}
}

func metaschemaFile(name string) string {
	return "metaschemas/" + name + ".json"
}
