package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the remaining fields take their defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, entity.PlayerX, conf.HumanMark())
		assert.False(t, conf.Search.Parallel)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.TTL)
	})

	t.Run("Explicit values", func(t *testing.T) {
		path := writeConfig(t, `
player-mark: o
search:
  parallel: true
redis:
  enabled: true
  host: cache
  port: "6380"
  ttl: 1h
`)

		conf, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, entity.PlayerO, conf.HumanMark())
		assert.True(t, conf.Search.Parallel)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.TTL)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		path := writeConfig(t, "player-mark: Z\n")

		_, err := Load(path)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
