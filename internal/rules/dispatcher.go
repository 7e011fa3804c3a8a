package rules

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/griffnb/core-typegen/internal/domain"
)

// Matcher tests a candidate fragment against a compiled meta-schema.
type Matcher interface {
	Matches(candidate any) bool
}

type compiledMatcher struct {
	schema *jsonschema.Schema
}

func (m compiledMatcher) Matches(candidate any) bool {
	return m.schema.Validate(candidate) == nil
}

// Option is a functional option for configuring Dispatcher.
type Option func(*Dispatcher)

// WithDebugger reports catch-all classifications to debug.
func WithDebugger(debug domain.Debugger) Option {
	return func(d *Dispatcher) {
		d.debug = debug
	}
}

// WithRules replaces the default rule list.
func WithRules(rules []Rule) Option {
	return func(d *Dispatcher) {
		d.rules = rules
	}
}

type compiledRule struct {
	Rule
	matcher Matcher
}

// Dispatcher holds the ordered rule list.
type Dispatcher struct {
	rules    []Rule
	compiled []compiledRule
	debug    domain.Debugger
}

// NewDispatcher compiles every rule's meta-schema once.
func NewDispatcher(options ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		rules: DefaultRules(),
		debug: domain.NoOpDebugger(),
	}

	for _, opt := range options {
		opt(d)
	}

	if len(d.rules) == 0 {
		return nil, errors.New("rules: at least one rule is required")
	}

	compiler := jsonschema.NewCompiler()
	for _, rule := range d.rules {
		data, err := metaschemas.ReadFile(metaschemaFile(rule.Name))
		if err != nil {
			return nil, fmt.Errorf("rules: meta-schema for %q: %w", rule.Name, err)
		}
		url := "rule-" + rule.Name + ".json"
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("rules: adding meta-schema %q: %w", rule.Name, err)
		}
		compiled, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("rules: compiling meta-schema %q: %w", rule.Name, err)
		}
		d.compiled = append(d.compiled, compiledRule{Rule: rule, matcher: compiledMatcher{schema: compiled}})
	}

	return d, nil
}

// Match returns the first rule whose predicate accepts the raw fragment.
// ok is false only when no rule matched, which cannot happen with the
// default catch-all in place.
func (d *Dispatcher) Match(raw any) (Rule, bool) {
	for _, rule := range d.compiled {
		if rule.matcher.Matches(raw) {
			return rule.Rule, true
		}
	}
	return Rule{Name: "any", Kind: domain.KindAny}, false
}

// Classify returns the kind for a raw fragment. Classification never fails:
// anything unmatched is "any".
func (d *Dispatcher) Classify(raw any) domain.Kind {
	rule, ok := d.Match(raw)
	if !ok || rule.Kind == domain.KindAny {
		if t, hasType := typeOf(raw); hasType {
			d.debug.Printf("fragment with type %v fell through to the catch-all rule", t)
		}
	}
	return rule.Kind
}

// UnknownType reports whether the fragment declares a type the rules do
// not recognize, like Swagger's "file".
func UnknownType(raw any) (any, bool) {
	t, ok := typeOf(raw)
	if !ok {
		return nil, false
	}
	if s, isString := t.(string); isString && domain.IsPrimitiveType(s) {
		return nil, false
	}
	return t, true
}

func typeOf(raw any) (any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	t, ok := m["type"]
	return t, ok
}
