package config

import "time"

// CacheConfig defines settings for the GET response cache.  Only the media
// listing endpoint is cached: it fans out to the hosted media service on
// every hit, and the stored images change rarely.  When Enabled is false or
// no Redis client is available the middleware becomes a no-op.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads CACHE_* environment variables with defaults.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 60*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
