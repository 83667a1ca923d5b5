package cli

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolwatch/config"
	"poolwatch/model"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))

	setLogLevel("error")
	assert.Equal(t, slog.LevelError, logLevel.Level())
	setLogLevel("info")
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	configureViper()

	_, err := loadConfig()
	require.Error(t, err)
	assert.Equal(t, model.Configuration, model.KindOf(err))
	assert.Contains(t, err.Error(), "blockfrost.apiKey")

	t.Setenv("POOLWATCH_BLOCKFROST_APIKEY", "mainnetKEY")
	t.Setenv("POOLWATCH_POLL_INTERVAL", "30s")
	t.Setenv("POOLWATCH_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("APIKEY", "secret")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mainnetKEY", cfg.Blockfrost.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, config.DefaultPoolHash, cfg.Pool.Hash)
	assert.Equal(t, []string{config.DefaultBlockfrostURL}, cfg.Blockfrost.URLs)
	assert.Equal(t, uint64(10), cfg.Poll.MaxFailures)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestVersionCommand(t *testing.T) {
	Version = "v1.2.3"
	t.Cleanup(func() { Version = "" })
	var buf bytes.Buffer
	versionCommand.SetOut(&buf)
	versionCommand.Run(versionCommand, nil)
	assert.Contains(t, buf.String(), "poolwatch v1.2.3")

	Version = ""
	assert.Equal(t, "dev", versionString())
}
