package spec

import "errors"

var (
	errNoSource        = errors.New("spec: must specify an input source (use WithFilePath or WithBytes)")
	errMultipleSources = errors.New("spec: must specify exactly one input source")
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte

	logger Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		logger: NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	hasFile := cfg.filePath != nil
	hasBytes := cfg.bytes != nil
	if !hasFile && !hasBytes {
		return nil, errNoSource
	}
	if hasFile && hasBytes {
		return nil, errMultipleSources
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw document content as the input source.
// Format is detected from the content.
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets the logger used during loading and by lookup methods.
// Default: NopLogger.
func WithLogger(logger Logger) Option {
	return func(cfg *loadConfig) error {
		if logger == nil {
			logger = NopLogger{}
		}
		cfg.logger = logger
		return nil
	}
}
