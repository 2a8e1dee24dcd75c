package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults match the documented surface", func(t *testing.T) {
		// act
		cfg, err := Load("")

		// assert
		assert.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Outbox.PollInterval)
		assert.Equal(t, 50, cfg.Outbox.BatchSize)
		assert.Equal(t, 100, cfg.Snapshot.Interval)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.DefaultTTL)
		assert.Equal(t, 30*time.Second, cfg.Idempotency.LockDuration)
		assert.Equal(t, false, cfg.Replay.OnStartup)
		assert.Equal(t, "nats", cfg.Broker.Driver)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		// arrange
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("snapshot:\n  interval: 10\nreplay:\n  on_startup: false\n"), 0o600)
		assert.NoError(t, err)
		t.Setenv("ESHOP_CART_REPLAY_ON_STARTUP", "true")
		t.Setenv("ESHOP_CART_OUTBOX_BATCH_SIZE", "7")

		// act
		cfg, err := Load(path)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, 10, cfg.Snapshot.Interval)
		assert.Equal(t, true, cfg.Replay.OnStartup)
		assert.Equal(t, 7, cfg.Outbox.BatchSize)
	})

	t.Run("dsn is assembled from parts", func(t *testing.T) {
		// arrange
		t.Setenv("ESHOP_CART_DATABASE_HOST", "db")
		t.Setenv("ESHOP_CART_DATABASE_NAME", "cart")
		t.Setenv("DB_USER", "svc")
		t.Setenv("DB_PASS", "secret")

		// act
		cfg, err := Load("")

		// assert
		assert.NoError(t, err)
		assert.Equal(t, "postgres://svc:secret@db:5432/cart?sslmode=disable", cfg.Database.WriteDSN)
		assert.Equal(t, cfg.Database.WriteDSN, cfg.Database.ReadDSN)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		// arrange
		t.Setenv("ESHOP_CART_BROKER_DRIVER", "carrier-pigeon")
		t.Setenv("ESHOP_CART_OUTBOX_BATCH_SIZE", "0")

		// act
		_, err := Load("")

		// assert
		assert.Error(t, err)
	})
}
