package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("STABILITY_API_KEY", "sk-test")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "discord-token", cfg.DiscordToken)
	assert.Equal(t, "sk-test", cfg.StabilityAPIKey)
	assert.Equal(t, "https://api.stability.ai", cfg.StabilityAPIHost)
	assert.Equal(t, "stable-diffusion-xl-1024-v1-0", cfg.StabilityModel)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.RemoveCommands)
}

func TestLoadMissingDiscordToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("STABILITY_API_KEY", "sk-test")

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("STABILITY_API_KEY", "")

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "STABILITY_API_KEY")
}

func TestLoadWhitespaceSecret(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "   ")
	t.Setenv("STABILITY_API_KEY", "sk-test")

	_, err := Load(missingEnvFile(t))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "from-env")
	t.Setenv("STABILITY_API_KEY", "sk-test")
	// registered for cleanup so the file value does not leak into other tests
	t.Setenv("IMAGES_DIR", "")
	os.Unsetenv("IMAGES_DIR")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DISCORD_TOKEN=from-file\nIMAGES_DIR=generated\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.DiscordToken)
	assert.Equal(t, "generated", cfg.ImagesDir)
}
