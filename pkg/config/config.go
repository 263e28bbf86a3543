package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"bami/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Discord
	DiscordBotToken string
	GuildID         string // guild to register commands against; empty = global

	// External tools
	YtdlpPath  string
	FfmpegPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DiscordBotToken: getEnv("DISCORD_BOT_TOKEN", ""),
		GuildID:         getEnv("GUILD_ID", ""),
		YtdlpPath:       getEnv("YTDLP_PATH", "yt-dlp"),
		FfmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.DiscordBotToken == "" {
		return errors.NewConfigMissingRequired("DISCORD_BOT_TOKEN")
	}
	return nil
}

// IsProduction returns true when running with the production profile
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
