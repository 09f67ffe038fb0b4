package resolver

import "github.com/apiverify/swagschema/spec"

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for cycle warnings and resolution traces.
// Default: spec.NopLogger.
func WithLogger(logger spec.Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			logger = spec.NopLogger{}
		}
		r.logger = logger
	}
}
