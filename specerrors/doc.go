// Package specerrors provides structured error types for the swagschema library.
//
// This package enables programmatic error handling via [errors.Is] and
// [errors.As], allowing callers to distinguish between different categories of
// failures and react accordingly.
//
// # Error Types
//
//   - [NotFoundError]: the specification file does not exist
//   - [ParseError]: the specification content is not valid JSON or YAML
//   - [InvalidReferenceError]: a $ref value is not a local #/ pointer
//   - [ReferenceNotFoundError]: a local pointer's target does not exist
//   - [ResolutionDepthError]: $ref expansion exceeded the depth limit
//   - [SchemaError]: a schema is structurally invalid for Draft-4 validation
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel for use with errors.Is():
//
//   - [ErrNotFound]: matches any [NotFoundError]
//   - [ErrParse]: matches any [ParseError]
//   - [ErrInvalidReference]: matches any [InvalidReferenceError]
//   - [ErrReferenceNotFound]: matches any [ReferenceNotFoundError]
//   - [ErrResolutionDepth]: matches any [ResolutionDepthError]
//   - [ErrSchema]: matches any [SchemaError]
//
// Specification-loading errors (NotFound, Parse) are fatal to
// initialization: a caller must not proceed without a loaded document.
// Resolution and schema errors are local to the call that produced them and
// never invalidate the loaded document. Invalid data is not an error at all;
// it is reported through a validation verdict.
package specerrors
