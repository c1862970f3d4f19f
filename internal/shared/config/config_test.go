package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HOLD_DURATION", "SWEEP_INTERVAL", "SWEEP_BATCH_SIZE", "STORE_DRIVER", "KAFKA_BROKERS", "DB_HOST", "REDIS_HOST", "REDIS_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 48*time.Hour, cfg.Reservation.HoldDuration)
	assert.Equal(t, 15*time.Minute, cfg.Reservation.SweepInterval)
	assert.Equal(t, 100, cfg.Reservation.SweepBatchSize)
	assert.Equal(t, 30*time.Second, cfg.Reservation.AvailabilityCacheTTL)
	assert.False(t, cfg.UsesMemoryStore())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "host=localhost")
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOLD_DURATION", "2h")
	t.Setenv("SWEEP_BATCH_SIZE", "25")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PORT", "9000")

	cfg := Load()
	assert.Equal(t, 2*time.Hour, cfg.Reservation.HoldDuration)
	assert.Equal(t, 25, cfg.Reservation.SweepBatchSize)
	assert.True(t, cfg.UsesMemoryStore())
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, ":9000", cfg.GetServerAddress())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL", "soon")
	t.Setenv("SWEEP_BATCH_SIZE", "many")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.Reservation.SweepInterval)
	assert.Equal(t, 100, cfg.Reservation.SweepBatchSize)
	assert.True(t, cfg.Redis.Enabled)
}
