// Package config builds typed configuration from environment variables so
// main stays lean. A .env file is honored when present (development only).
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	Server Server
	Store  Store
	Scan   Scan
	Redis  Redis
	Kafka  Kafka
	Auth   Auth
	Log    Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Store selects and configures the persistence backend.
type Store struct {
	// Driver is one of "memory", "postgres", "sqlite".
	Driver      string
	PostgresDSN string
	SQLitePath  string
}

// Scan bounds the full-corpus analysis run.
type Scan struct {
	// MaxProfiles caps corpus size; the pair scan is O(n^2).
	MaxProfiles int
	// Shards is the number of detection workers.
	Shards int
}

// Redis configures the optional network-query cache. Disabled when URL is empty.
type Redis struct {
	URL      string
	CacheTTL time.Duration
}

// Kafka configures the optional audit sink. Disabled when Brokers is empty.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Auth configures the optional bearer-token gate on mutating endpoints.
// Disabled when SigningKey is empty.
type Auth struct {
	SigningKey string
}

// Log holds logging configuration.
type Log struct {
	Level string
}

// FromEnv builds a Config from environment variables. Missing .env is fine;
// system environment always wins.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Server: Server{
			Addr: getEnv("CROSSLINK_ADDR", ":8080"),
		},
		Store: Store{
			Driver:      getEnv("STORE_DRIVER", "memory"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "crosslink.db"),
		},
		Scan: Scan{
			MaxProfiles: getEnvInt("SCAN_MAX_PROFILES", 10000),
			Shards:      getEnvInt("SCAN_SHARDS", 4),
		},
		Redis: Redis{
			URL:      getEnv("REDIS_URL", ""),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		Kafka: Kafka{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_AUDIT_TOPIC", "crosslink.audit"),
		},
		Auth: Auth{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
		},
		Log: Log{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
