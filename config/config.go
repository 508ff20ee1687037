package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const DefaultEnvFile = ".env"

type Config struct {
	DiscordToken   string `env:"DISCORD_TOKEN,notEmpty"`
	GuildID        string `env:"DISCORD_GUILD_ID"`
	RemoveCommands bool   `env:"REMOVE_COMMANDS" envDefault:"false"`

	StabilityAPIKey  string `env:"STABILITY_API_KEY,notEmpty"`
	StabilityAPIHost string `env:"STABILITY_API_HOST" envDefault:"https://api.stability.ai"`
	StabilityModel   string `env:"STABILITY_MODEL" envDefault:"stable-diffusion-xl-1024-v1-0"`

	ImagesDir string `env:"IMAGES_DIR" envDefault:"images"`
	DBFile    string `env:"DB_FILE" envDefault:"stickerme_bot.sqlite"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`
	MetricsAddr string `env:"METRICS_ADDR"`
}

// ConfigurationError means the process cannot start.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Load reads envFile into the environment if it exists, then parses the
// environment. Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Err: fmt.Errorf("load %s: %w", envFile, err)}
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	cfg.DiscordToken = strings.TrimSpace(cfg.DiscordToken)
	cfg.StabilityAPIKey = strings.TrimSpace(cfg.StabilityAPIKey)

	if cfg.DiscordToken == "" {
		return nil, &ConfigurationError{Err: errors.New("DISCORD_TOKEN not found in environment variables")}
	}

	if cfg.StabilityAPIKey == "" {
		return nil, &ConfigurationError{Err: errors.New("STABILITY_API_KEY not found in environment variables")}
	}

	return cfg, nil
}
