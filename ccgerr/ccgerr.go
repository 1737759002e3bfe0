// Package ccgerr classifies the error kinds so callers can tell
// a fatal bug in a collaborator apart from an expected, recoverable outcome
// of parsing one sentence.
package ccgerr

import (
	"errors"
	"fmt"
)

// Kind is one of the error categories.
type Kind int

const (
	// Structural indicates a rule-engine or internal invariant violation
	// (e.g. a dependency with headIndex == 0): fatal and unrecoverable.
	Structural Kind = iota
	// ResourceExceeded indicates MAX_WORDS or MAX_SUPERCATS was hit:
	// non-fatal, the sentence is skipped and the parser state reset.
	ResourceExceeded
	// Config indicates an invalid configuration value, surfaced as a
	// precondition violation at call time rather than during a parse.
	Config
	// Collaborator indicates an I/O failure loading a weight table or
	// neural model; never raised during parseSentence itself.
	Collaborator
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case ResourceExceeded:
		return "resource-exceeded"
	case Config:
		return "config"
	case Collaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// Error wraps a Cause with the Kind that classifies it, so errors.As
// recovers the classification without string matching.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind wrapping a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Cause: fmt.Errorf(format, args...)}
}

// Wrap builds an Error of the given kind wrapping an existing error.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Is reports whether err is, or wraps, a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
