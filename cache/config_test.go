package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Enabled: true}
	cfg.ApplyDefaults()

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 5*time.Minute, cfg.DefaultTTL)
	assert.Equal(t, 10000, cfg.MaxEntries)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("disabled skips validation", func(t *testing.T) {
		cfg := Config{Enabled: false}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("memory store is valid", func(t *testing.T) {
		cfg := Config{Enabled: true, Store: StoreMemory, DefaultTTL: time.Minute}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("redis store requires instance", func(t *testing.T) {
		cfg := Config{Enabled: true, Store: StoreRedis, DefaultTTL: time.Minute}
		assert.Error(t, cfg.Validate())

		cfg.Instance = "default"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown store rejected", func(t *testing.T) {
		cfg := Config{Enabled: true, Store: "etcd"}
		assert.Error(t, cfg.Validate())
	})
}
