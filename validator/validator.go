// Package validator checks decoded JSON data against Swagger 2.0 schemas
// using JSON Schema Draft-4 keyword semantics.
//
// Invalid data is never a Go error: it is reported through a Result carrying
// every violation found, each qualified with the dotted path to the offending
// value. Errors are reserved for structurally invalid schemas
// (*specerrors.SchemaError) and broken specification documents, so "the data
// violates the contract" and "the contract itself is broken" stay distinct
// failure classes at the type level.
package validator

import (
	"fmt"
	"strings"

	"github.com/apiverify/swagschema/resolver"
	"github.com/apiverify/swagschema/spec"
)

// Issue is a single violated constraint.
type Issue struct {
	// Path is the dotted path through the data to the offending value.
	// Empty for top-level violations. Array indices are bare integers.
	Path string
	// Message is a human-readable description of the violation
	Message string
}

// String renders the issue as "<dotted.path>: <reason>", or just the reason
// for top-level violations.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result is the verdict of one validation call.
type Result struct {
	// Valid is true when no constraint was violated
	Valid bool
	// NoSchema is true when no schema was documented for the endpoint and
	// the data was accepted by default rather than actively checked
	NoSchema bool
	// Issues holds every violation in discovery order
	Issues []Issue
}

// Message returns all violations joined with "; ", or "" when valid.
func (r *Result) Message() string {
	if len(r.Issues) == 0 {
		return ""
	}
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// Validator validates data values against resolved schemas. It holds only
// configuration and is safe for concurrent use; each call is stateless.
type Validator struct {
	logger   spec.Logger
	resolver *resolver.Resolver
}

// New creates a Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:   spec.NopLogger{},
		resolver: resolver.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks data against schema and returns a verdict listing every
// violated constraint. The schema must be free of $ref nodes; resolve it
// first (or use ValidateRequest / ValidateResponse, which do).
//
// A structurally invalid schema fails with a *specerrors.SchemaError; that
// is the only error condition.
func (v *Validator) Validate(data any, schema map[string]any) (*Result, error) {
	var issues []Issue
	if err := v.validateValue(data, schema, "", &issues); err != nil {
		v.logger.Error("schema is structurally invalid", "error", err)
		return nil, err
	}

	result := &Result{Valid: len(issues) == 0, Issues: issues}
	if result.Valid {
		v.logger.Debug("validation passed")
	} else {
		v.logger.Debug("validation failed", "message", result.Message())
	}
	return result, nil
}

// ValidateResponse validates a response payload against the schema documented
// for (path, method, status), resolving $refs first.
//
// When no schema is documented for the endpoint the data is accepted by
// default: the verdict is valid with NoSchema set, and a notice is logged.
func (v *Validator) ValidateResponse(data any, doc *spec.Document, path, method string, status int) (*Result, error) {
	schema, ok := doc.ResponseSchema(path, method, status)
	if !ok {
		v.logger.Info("no response schema documented; accepting by default",
			"path", path, "method", method, "status", status)
		return &Result{Valid: true, NoSchema: true}, nil
	}
	return v.validateAgainst(data, doc, schema)
}

// ValidateRequest validates a request body against the schema of the
// operation's in=body parameter, resolving $refs first. Like
// ValidateResponse, an undocumented body schema accepts by default.
func (v *Validator) ValidateRequest(data any, doc *spec.Document, path, method string) (*Result, error) {
	schema, ok := doc.RequestBodySchema(path, method)
	if !ok {
		v.logger.Info("no request schema documented; accepting by default",
			"path", path, "method", method)
		return &Result{Valid: true, NoSchema: true}, nil
	}
	return v.validateAgainst(data, doc, schema)
}

// validateAgainst resolves schema against doc and validates data.
func (v *Validator) validateAgainst(data any, doc *spec.Document, schema map[string]any) (*Result, error) {
	resolved, err := v.resolver.Resolve(doc, schema)
	if err != nil {
		return nil, fmt.Errorf("validator: resolving schema: %w", err)
	}
	resolvedSchema, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("validator: resolved schema is %T, expected object", resolved)
	}
	return v.Validate(data, resolvedSchema)
}
