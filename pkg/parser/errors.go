package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by ParseError.Unwrap.
var (
	// ErrNoProgress indicates the parser failed to consume input. It signals an
	// internal inconsistency rather than malformed input.
	ErrNoProgress = errors.New("parser made no progress")

	// ErrUnterminatedFrontmatter indicates a document that opens a metadata
	// block without closing it.
	ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter")

	// ErrTokenMismatch indicates tokens that do not cover the input exactly.
	ErrTokenMismatch = errors.New("tokens do not partition input")
)

// ErrorKind identifies the class of a ParseError.
type ErrorKind int

// Parse error kinds.
const (
	NoProgress ErrorKind = iota + 1
	UnterminatedFrontmatter
	TokenMismatch
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case NoProgress:
		return "NoProgress"
	case UnterminatedFrontmatter:
		return "UnterminatedFrontmatter"
	case TokenMismatch:
		return "TokenMismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is a fatal structural error. Offset is the byte position in the
// input where the condition was detected.
type ParseError struct {
	Kind   ErrorKind
	Offset int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %v", e.Offset, e.Unwrap())
}

// Unwrap maps the error kind to its sentinel so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case NoProgress:
		return ErrNoProgress
	case UnterminatedFrontmatter:
		return ErrUnterminatedFrontmatter
	case TokenMismatch:
		return ErrTokenMismatch
	default:
		return nil
	}
}
