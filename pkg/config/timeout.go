package config

import "time"

// TimeoutConfig defines the bounds for timeout validation.
type TimeoutConfig struct {
	Min     time.Duration // 0 means no minimum
	Max     time.Duration // 0 means no maximum
	Default time.Duration
}

// DefaultTimeoutConfig returns the bounds of a mining run timeout.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Min:     MinTimeout,
		Max:     MaxTimeout,
		Default: DefaultTimeout,
	}
}

// ValidateTimeout normalizes a timeout. Values at or below zero, and values
// under a configured minimum, give the default; values over a configured
// maximum give the maximum.
func ValidateTimeout(timeout time.Duration, config TimeoutConfig) time.Duration {
	if timeout <= 0 {
		return config.Default
	}
	if config.Min > 0 && timeout < config.Min {
		return config.Default
	}
	if config.Max > 0 && timeout > config.Max {
		return config.Max
	}
	return timeout
}
