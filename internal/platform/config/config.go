package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"checkpoint/internal/cache"
	"checkpoint/pkg/platform/strings"
)

// DefaultLocations are the branches compared on the dashboard.
var DefaultLocations = []string{"Charata", "Bandera", "Quimili"}

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// CacheTTL bounds the freshness of the shared checklist and audit bundle.
	CacheTTL time.Duration
	// PillarOrder is the display order of pillars; empty means use the seed file.
	PillarOrder []string
	// Locations are the dashboard comparison rows.
	Locations []string
	// SeedFile is the YAML checklist loaded into an empty store at startup.
	SeedFile string
}

// RedisConfig configures the optional Redis client used for cross-replica
// cache invalidation. An empty URL disables it.
type RedisConfig struct {
	URL          string
	Channel      string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional activity event producer. No brokers
// means events are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is loaded first if present.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	ttl, err := envDuration("CACHE_TTL", cache.DefaultTTL)
	if err != nil {
		return Server{}, err
	}
	dial, err := envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	if err != nil {
		return Server{}, err
	}
	rw, err := envDuration("REDIS_IO_TIMEOUT", 3*time.Second)
	if err != nil {
		return Server{}, err
	}
	pool, err := envInt("REDIS_POOL_SIZE", 10)
	if err != nil {
		return Server{}, err
	}

	locations := strings.SplitList(os.Getenv("LOCATIONS"))
	if len(locations) == 0 {
		locations = DefaultLocations
	}

	return Server{
		Addr:        envOrDefault("CHECKPOINT_ADDR", ":8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			Channel:      os.Getenv("REDIS_INVALIDATION_CHANNEL"),
			PoolSize:     pool,
			MinIdleConns: 1,
			DialTimeout:  dial,
			ReadTimeout:  rw,
			WriteTimeout: rw,
		},
		Kafka: KafkaConfig{
			Brokers: strings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOrDefault("KAFKA_ACTIVITY_TOPIC", "checkpoint.activity"),
		},
		CacheTTL:    ttl,
		PillarOrder: strings.SplitList(os.Getenv("PILLAR_ORDER")),
		Locations:   locations,
		SeedFile:    os.Getenv("CHECKLIST_SEED_FILE"),
	}, nil
}

// IsProduction reports whether the process runs with production settings.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
