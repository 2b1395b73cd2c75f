package resilience

import "time"

// CircuitBreakerConfig tunes the breaker in front of one upstream.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Normalize replaces unset or negative limits with the defaults. Enabled is
// kept as given, so a zero config stays disabled.
func (c CircuitBreakerConfig) Normalize() CircuitBreakerConfig {
	d := DefaultCircuitBreakerConfig()
	c.FailureThreshold = positiveOr(c.FailureThreshold, d.FailureThreshold)
	c.HalfOpenMaxReq = positiveOr(c.HalfOpenMaxReq, d.HalfOpenMaxReq)
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	return c
}

func positiveOr(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
