package bank

import "time"

const (
	DefaultIdleExpiration   = 10 * time.Minute
	DefaultCleanupInterval  = time.Minute
	DefaultFlushConcurrency = 4
)

type Config struct {
	// IdleExpiration is how long an untouched recorder stays in memory.
	IdleExpiration   time.Duration `yaml:"IdleExpiration" json:"idle_expiration"`
	CleanupInterval  time.Duration `yaml:"CleanupInterval" json:"cleanup_interval"`
	FlushConcurrency int           `yaml:"FlushConcurrency" json:"flush_concurrency"`
}

func (cfg *Config) normalize() {
	if cfg.IdleExpiration <= 0 {
		cfg.IdleExpiration = DefaultIdleExpiration
	}

	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	if cfg.FlushConcurrency <= 0 {
		cfg.FlushConcurrency = DefaultFlushConcurrency
	}
}
