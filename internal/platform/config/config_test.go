package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkpoint/internal/cache"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"CHECKPOINT_ADDR", "CACHE_TTL", "PILLAR_ORDER", "LOCATIONS", "KAFKA_BROKERS", "REDIS_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, cache.DefaultTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultLocations, cfg.Locations)
	assert.Empty(t, cfg.PillarOrder)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("PILLAR_ORDER", "Seguridad, Gente ,Calidad")
	t.Setenv("LOCATIONS", "Resistencia")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"Seguridad", "Gente", "Calidad"}, cfg.PillarOrder)
	assert.Equal(t, []string{"Resistencia"}, cfg.Locations)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnvRejectsBadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("CACHE_TTL", "-1m")
	_, err = FromEnv()
	assert.Error(t, err)
}
