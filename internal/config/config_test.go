package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenborg/discordrest/internal/config"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(p, []byte(data), 0644)
	require.NoError(t, err)
	return p
}

func TestFromFile(t *testing.T) {
	t.Run("should load a complete config", func(t *testing.T) {
		p := writeConfig(t, `
[app]
token = "xyz"
api_version = 9
locale = "de"
loglevel = "debug"
timeout = 10
db_path = "/tmp"

[proxy]
url = "socks5://localhost:1080"

[[channels]]
name = "alerts"
id = "123456789"
`)
		c, err := config.FromFile(p)
		require.NoError(t, err)
		assert.Equal(t, "xyz", c.App.Token)
		assert.Equal(t, 9, c.App.APIVersion)
		assert.Equal(t, "de", c.App.Locale)
		assert.Equal(t, slog.LevelDebug, c.App.LoggerLevel())
		u, err := c.Proxy.ProxyURL()
		require.NoError(t, err)
		assert.Equal(t, "socks5://localhost:1080", u.String())
		require.Len(t, c.Channels, 1)
		assert.Equal(t, "alerts", c.Channels[0].Name)
		assert.EqualValues(t, 123456789, c.Channels[0].Snowflake())
	})
	t.Run("should apply defaults", func(t *testing.T) {
		p := writeConfig(t, `
[app]
token = "xyz"
`)
		c, err := config.FromFile(p)
		require.NoError(t, err)
		assert.Equal(t, 10, c.App.APIVersion)
		assert.Equal(t, "en-US", c.App.Locale)
		assert.Equal(t, 30, c.App.Timeout)
		assert.Equal(t, ".", c.App.DBPath)
		assert.Equal(t, slog.LevelInfo, c.App.LoggerLevel())
		u, err := c.Proxy.ProxyURL()
		require.NoError(t, err)
		assert.Nil(t, u)
	})
	t.Run("should report missing token", func(t *testing.T) {
		p := writeConfig(t, `
[app]
locale = "en-US"
`)
		_, err := config.FromFile(p)
		assert.ErrorContains(t, err, "token")
	})
	t.Run("should report channel without name", func(t *testing.T) {
		p := writeConfig(t, `
[app]
token = "xyz"

[[channels]]
id = "123"
`)
		_, err := config.FromFile(p)
		assert.Error(t, err)
	})
	t.Run("should report duplicate channel names", func(t *testing.T) {
		p := writeConfig(t, `
[app]
token = "xyz"

[[channels]]
name = "alerts"
id = "123"

[[channels]]
name = "alerts"
id = "456"
`)
		_, err := config.FromFile(p)
		assert.ErrorContains(t, err, "not unique")
	})
	t.Run("should report invalid channel id", func(t *testing.T) {
		p := writeConfig(t, `
[app]
token = "xyz"

[[channels]]
name = "alerts"
id = "not-a-snowflake"
`)
		_, err := config.FromFile(p)
		assert.ErrorContains(t, err, "invalid id")
	})
	t.Run("should report missing file", func(t *testing.T) {
		_, err := config.FromFile("/does/not/exist.toml")
		assert.Error(t, err)
	})
}
