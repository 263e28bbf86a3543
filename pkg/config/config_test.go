package config

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bami/pkg/errors"
)

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token-123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", cfg.DiscordBotToken)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "yt-dlp", cfg.YtdlpPath)
	assert.Equal(t, "ffmpeg", cfg.FfmpegPath)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token-123")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("YTDLP_PATH", "/usr/local/bin/yt-dlp")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/usr/local/bin/yt-dlp", cfg.YtdlpPath)
	assert.True(t, cfg.IsProduction())
}

func TestValidateRequiresToken(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)

	var missing *errors.ErrConfigMissingRequired
	require.True(t, stderrors.As(err, &missing))
	assert.Equal(t, "DISCORD_BOT_TOKEN", missing.Field)

	cfg.DiscordBotToken = "token-123"
	assert.NoError(t, cfg.Validate())
}
