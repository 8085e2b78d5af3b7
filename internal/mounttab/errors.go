package mounttab

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	// ErrMalformedToken is returned when a required field is empty or missing
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnescape is returned when a backslash does not start a known escape
	ErrUnescape = errors.New("unescape failure")
	// ErrEmptyOptionList is returned when the options field has an empty entry
	ErrEmptyOptionList = errors.New("empty option list")
	// ErrGrammarMismatch is returned when the dump/pass fields are wrong or
	// content is left over after them
	ErrGrammarMismatch = errors.New("grammar mismatch")
)

// ParseError describes where and why a line failed to parse
type ParseError struct {
	// Kind is one of the Err* sentinels above
	Kind error
	// Element names the element that was expected, e.g. "mount point"
	Element string
	// Offset is the byte offset into the input where matching failed
	Offset int
	// Remaining is the unconsumed input starting at Offset
	Remaining string
	// Detail is a short human readable reason
	Detail string
}

func newParseError(kind error, element, input string, offset int, detail string) *ParseError {
	return &ParseError{
		Kind:      kind,
		Element:   element,
		Offset:    offset,
		Remaining: input[offset:],
		Detail:    detail,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s at column %d: %s", e.Kind, e.Element, e.Column(), e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Column returns the 1-based column of Offset
func (e *ParseError) Column() int {
	return e.Offset + 1
}
