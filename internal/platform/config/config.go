package config

import (
	"os"
	"time"
)

// Config captures process-level configuration for the site library.
type Config struct {
	// DefaultFamily and DefaultLanguage seed the mutable defaults context
	// passed to the resolver.
	DefaultFamily   string
	DefaultLanguage string

	// PostgresURL is the DSN of the family directory database. Empty means
	// the Postgres-backed directory is not configured.
	PostgresURL string

	Redis RedisConfig

	// FamilyCacheTTL bounds how long a cached family snapshot is served
	// before the directory is consulted again.
	FamilyCacheTTL time.Duration
}

// RedisConfig holds connection settings for the optional family cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so wiring stays lean.
func FromEnv() Config {
	family := os.Getenv("WIKISITE_DEFAULT_FAMILY")
	if family == "" {
		family = "wikipedia"
	}
	lang := os.Getenv("WIKISITE_DEFAULT_LANG")
	if lang == "" {
		lang = "en"
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("WIKISITE_FAMILY_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	return Config{
		DefaultFamily:   family,
		DefaultLanguage: lang,
		PostgresURL:     os.Getenv("WIKISITE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("WIKISITE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		FamilyCacheTTL: ttl,
	}
}
