package validator

import (
	"github.com/apiverify/swagschema/resolver"
	"github.com/apiverify/swagschema/spec"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for verdict traces and schema errors.
// Default: spec.NopLogger.
func WithLogger(logger spec.Logger) Option {
	return func(v *Validator) {
		if logger == nil {
			logger = spec.NopLogger{}
		}
		v.logger = logger
	}
}

// WithResolver sets the resolver used by ValidateRequest and
// ValidateResponse to expand $ref nodes before validation.
// Default: resolver.New().
func WithResolver(r *resolver.Resolver) Option {
	return func(v *Validator) {
		if r == nil {
			r = resolver.New()
		}
		v.resolver = r
	}
}
