package specerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrNotFound indicates the specification file does not exist.
	ErrNotFound = errors.New("specification not found")

	// ErrParse indicates the specification content could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrInvalidReference indicates a $ref value is not a local pointer.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrReferenceNotFound indicates a local pointer's target is missing.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrResolutionDepth indicates $ref expansion exceeded the depth limit.
	ErrResolutionDepth = errors.New("resolution depth exceeded")

	// ErrSchema indicates a schema is structurally invalid for validation.
	ErrSchema = errors.New("schema error")
)

// NotFoundError reports that the specification file is missing at load time.
// This is fatal to initialization: nothing downstream can operate without a
// loaded document.
type NotFoundError struct {
	// Path is the file path that was not found
	Path string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	msg := "specification not found"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports that the specification content is not valid JSON or
// YAML. Like NotFoundError, this is fatal to initialization.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the detected source format ("json" or "yaml"), if known
	Format string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += fmt.Sprintf(" (%s)", e.Format)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// InvalidReferenceError reports a $ref value that is not a local JSON
// pointer of the form #/a/b/c. External file and URL references are not
// supported by this library.
type InvalidReferenceError struct {
	// Ref is the offending reference string
	Ref string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidReferenceError) Error() string {
	msg := "invalid reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// ReferenceNotFoundError reports a local pointer whose path has a missing
// segment in the document.
type ReferenceNotFoundError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Segment is the pointer segment that was missing
	Segment string
}

// Error returns a human-readable error message.
func (e *ReferenceNotFoundError) Error() string {
	msg := "reference not found"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Segment != "" {
		msg += fmt.Sprintf(" (missing segment: %s)", e.Segment)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// ResolutionDepthError reports that $ref expansion exceeded the configured
// depth limit. Cycles are detected separately and do not produce this error;
// it guards against deep non-cyclic fan-out.
type ResolutionDepthError struct {
	// Ref is the reference being followed when the limit was hit
	Ref string
	// Limit is the configured maximum depth
	Limit int
}

// Error returns a human-readable error message.
func (e *ResolutionDepthError) Error() string {
	msg := fmt.Sprintf("resolution depth exceeded (limit: %d)", e.Limit)
	if e.Ref != "" {
		msg += " at " + e.Ref
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResolutionDepthError) Is(target error) bool {
	return target == ErrResolutionDepth
}

// SchemaError reports that a schema is itself structurally invalid for
// Draft-4 validation, e.g. a minimum that is not a number. This is distinct
// from a data-validation failure, which is never an error.
type SchemaError struct {
	// Path is the dotted path to the problematic schema location
	Path string
	// Keyword is the schema keyword with the invalid value
	Keyword string
	// Message describes the structural problem
	Message string
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "invalid schema"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Keyword != "" {
		msg += ": " + e.Keyword
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
