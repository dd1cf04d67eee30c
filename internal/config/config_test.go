package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults apply without a config file", func(t *testing.T) {
		// Given: no config file and no overrides
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the defaults are used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis", conf.Session.Store)
		assert.Equal(t, "session", conf.Session.Name)
		assert.Equal(t, 2678400, conf.Session.MaxAge)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.False(t, conf.Session.HasSecret())
	})

	t.Run("Environment overrides the session secret", func(t *testing.T) {
		// Given: the secret and store come from the environment
		t.Setenv("SESSION_SECRET", "short")
		t.Setenv("SESSION_STORE", "cookie")

		// When: the config is loaded
		conf, err := Load(filepath.Join(t.TempDir(), "config.yml"))

		// Then: the overrides are visible and the short secret is flagged
		require.NoError(t, err)
		assert.Equal(t, "short", conf.Session.Secret)
		assert.Equal(t, "cookie", conf.Session.Store)
		assert.True(t, conf.Session.IsWeakSecret())
	})

	t.Run("Reads the config file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "http-port: \"9090\"\nsession:\n  max-age: 60\nredis:\n  host: redis\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 60, conf.Session.MaxAge)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
	})
}
