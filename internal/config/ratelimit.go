package config

import "time"

// RateLimitConfig controls the fixed-window request limiter backed by
// Redis. When Redis is unavailable the limiter degrades to a no-op.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // max requests per window and key
	Window  time.Duration // window length
	Prefix  string        // Redis key prefix
}

// LoadRateLimitConfig reads the limiter settings from the environment,
// clamping values that would make the limiter useless.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_REQUESTS", 60),
		Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
