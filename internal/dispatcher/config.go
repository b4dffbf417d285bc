package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// Strict returns contract errors to the caller instead of logging them.
	Strict bool

	// PageSize is the number of rows PageUp and PageDown move.
	PageSize int

	// EnableMetrics enables per-key dispatch statistics.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strict:        false,
		PageSize:      20,
		EnableMetrics: false,
	}
}

// WithStrict returns a copy of the config with strict mode set.
func (c Config) WithStrict(strict bool) Config {
	c.Strict = strict
	return c
}

// WithPageSize returns a copy of the config with the page size set.
func (c Config) WithPageSize(rows int) Config {
	c.PageSize = rows
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
