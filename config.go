package tokenguard

import (
	"errors"
	"time"
)

// Config holds validator tuning parameters.
//
// Config instances are intended to be set during initialization through
// [Builder.WithConfig] and treated as immutable afterwards.
type Config struct {
	// Leeway widens library-side time-claim checks during signature
	// verification. It does not affect the Expired field, which always
	// compares the wall clock against exp directly. Must be within [0, 2m].
	Leeway time.Duration
}

// DefaultConfig returns the zero-leeway default configuration.
func DefaultConfig() Config {
	return Config{}
}

func validateConfig(cfg Config) error {
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	return nil
}
