package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is available, caching is disabled.
// Methods lists the HTTP methods to cache.  TTL is the lifetime of cache
// entries; reservation listings change on every booking so the default is
// deliberately short.  KeyStrategy controls which parts of the request form
// the cache key.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CACHE_TTL", "15s")),
		KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

// Shared env helpers, also used by config.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
