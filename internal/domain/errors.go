package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a fatal conversion error.
type ErrorCode string

const (
	// CodeReference indicates a canonical reference could not be resolved.
	CodeReference ErrorCode = "reference"
	// CodeCombinator indicates a some-of descriptor was built from a fragment without oneOf/anyOf/allOf.
	CodeCombinator ErrorCode = "combinator"
	// CodeUnnamedRoot indicates a root render was requested for a descriptor without a model name.
	CodeUnnamedRoot ErrorCode = "unnamed-root"
)

var (
	// ErrReference matches every reference error with errors.Is.
	ErrReference = errors.New("reference error")
	// ErrCombinator matches every combinator error with errors.Is.
	ErrCombinator = errors.New("combinator error")
	// ErrUnnamedRoot matches every unnamed-root error with errors.Is.
	ErrUnnamedRoot = errors.New("a renderable root model must have a name")
)

// Error is a fatal conversion error. It identifies the offending reference
// and, when available, a compact rendering of the offending fragment.
type Error struct {
	Code      ErrorCode
	Reference string
	Fragment  string
	Message   string
	Err       error
}

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Reference != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Reference))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Fragment != "" {
		b.WriteString(" (fragment ")
		b.WriteString(e.Fragment)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap exposes both the code sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{sentinel(e.Code)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinel(code ErrorCode) error {
	switch code {
	case CodeReference:
		return ErrReference
	case CodeCombinator:
		return ErrCombinator
	case CodeUnnamedRoot:
		return ErrUnnamedRoot
	default:
		return nil
	}
}

// NewReferenceError builds a reference error for ref.
func NewReferenceError(ref string, format string, args ...interface{}) *Error {
	return &Error{Code: CodeReference, Reference: ref, Message: fmt.Sprintf(format, args...)}
}

// NewCombinatorError builds a combinator error for the fragment found at ref.
func NewCombinatorError(ref, fragment string) *Error {
	return &Error{
		Code:      CodeCombinator,
		Reference: ref,
		Fragment:  fragment,
		Message:   "fragment has none of oneOf, anyOf or allOf",
	}
}

// NewUnnamedRootError builds an unnamed-root error. suggested is the
// descriptor's fallback name, if any, to help locate it.
func NewUnnamedRootError(ref, suggested string) *Error {
	msg := ErrUnnamedRoot.Error()
	if suggested != "" {
		msg += " (suggested name " + suggested + ")"
	}
	return &Error{Code: CodeUnnamedRoot, Reference: ref, Message: msg}
}

// WarningCode classifies a non-fatal conversion warning.
type WarningCode string

const (
	// WarnUnsupportedVariant flags combinator interactions that are merged without type checking.
	WarnUnsupportedVariant WarningCode = "unsupported-variant"
	// WarnCatchAll flags fragments that only matched the catch-all rule.
	WarnCatchAll WarningCode = "catch-all"
)

// Warning is a non-fatal diagnostic produced during conversion.
type Warning struct {
	Code      WarningCode
	Reference string
	Message   string
}

// String renders the warning on one line.
func (w Warning) String() string {
	if w.Reference == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s %q: %s", w.Code, w.Reference, w.Message)
}
