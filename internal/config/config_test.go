package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8084", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "medium", cfg.DefaultTankerType)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Minute, cfg.ResultTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Contains(t, cfg.DBConfig.DSN(), "dbname=routing")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROUTING_SERVICE_PORT", "9090")
	t.Setenv("ROUTING_APP_ENV", "production")
	t.Setenv("ROUTING_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("ROUTING_RESULT_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.ResultTTL)
}

func TestLoadNormalizesPort(t *testing.T) {
	t.Setenv("ROUTING_SERVICE_PORT", ":7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Port)
}
