package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{Port: "8080"},
		Storage: StorageConfig{
			BasePath:   "/tmp/editdrop",
			UploadPath: "/tmp/editdrop/uploads",
		},
		Catalog: CatalogConfig{
			RotationTimezone: "Europe/Moscow",
			RandomSampleSize: 16,
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	t.Run("bad environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "prod"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing storage path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.BasePath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.Catalog.RotationTimezone = "Mars/Olympus_Mons"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad sample size", func(t *testing.T) {
		cfg := validConfig()
		cfg.Catalog.RandomSampleSize = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestRotationLocation(t *testing.T) {
	cfg := validConfig()
	loc := cfg.RotationLocation()
	require.NotNil(t, loc)

	// Moscow is UTC+3 year round.
	utc := time.Date(2026, 1, 10, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, utc.In(loc).Day()-utc.Day())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Nil(t, splitList(""))
}
