// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, storage, fetch and cache settings

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Storage contains record store configuration
	Storage StorageConfig

	// Fetch contains fetch guard limits
	Fetch FetchConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Auth contains token verification configuration
	Auth AuthConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per second per client IP
	RateLimit int

	// RateBurst is the burst allowance on top of RateLimit
	RateBurst int

	// LogLevel is the minimum log level (debug/info/warn/error)
	LogLevel string
}

// StorageConfig holds record store configuration
type StorageConfig struct {
	// DatabasePath is the SQLite database file path
	DatabasePath string
}

// FetchConfig holds fetch guard limits
type FetchConfig struct {
	// TimeoutSeconds is the hard budget for a single fetch
	TimeoutSeconds int

	// MaxResponseBytes caps how much of a response body is read
	MaxResponseBytes int64
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// AuthConfig holds token verification configuration
type AuthConfig struct {
	// Secret is the shared secret for verifying identity tokens
	Secret string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 10),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 20),
			LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DatabasePath: getEnvOrDefault("DATABASE_PATH", "readwell.db"),
		},
		Fetch: FetchConfig{
			TimeoutSeconds:   getEnvAsIntOrDefault("FETCH_TIMEOUT_SECONDS", 12),
			MaxResponseBytes: int64(getEnvAsIntOrDefault("MAX_RESPONSE_BYTES", 3*1024*1024)),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Auth: AuthConfig{
			Secret: os.Getenv("AUTH_SECRET"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Fetch.MaxResponseBytes < 1 {
		return errors.New("max response bytes must be positive")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Auth.Secret == "" {
		return errors.New("auth secret cannot be empty")
	}

	return nil
}
