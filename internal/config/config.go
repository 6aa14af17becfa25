// Package config assembles the server configuration from an optional YAML
// file overlaid with environment variables. A .env file in the working
// directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the catalog server needs to start.
type Config struct {
	Address     string        `yaml:"address"`
	BasePath    string        `yaml:"base_path"`
	APIBaseURL  string        `yaml:"api_base_url"`
	ScreenIdle  time.Duration `yaml:"screen_idle"`
	SessionKeys SessionKeys   `yaml:"session"`
}

// SessionKeys holds the cookie codec key material. Empty values select
// ephemeral keys, which invalidate sessions across restarts.
type SessionKeys struct {
	HashKey  string `yaml:"hash_key"`
	BlockKey string `yaml:"block_key"`
}

func defaults() Config {
	return Config{
		Address:    ":8080",
		BasePath:   "/",
		APIBaseURL: "",
		ScreenIdle: 30 * time.Minute,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CATALOG_CONFIG_FILE (if any), then environment variable overrides.
func Load() (Config, error) {
	// Best effort; a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CATALOG_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Address = GetEnv("CATALOG_HTTP_ADDR", cfg.Address)
	cfg.BasePath = GetEnv("CATALOG_BASE_PATH", cfg.BasePath)
	cfg.APIBaseURL = GetEnv("CATALOG_API_BASE_URL", cfg.APIBaseURL)
	cfg.ScreenIdle = GetDurationEnv("CATALOG_SCREEN_IDLE", cfg.ScreenIdle)
	cfg.SessionKeys.HashKey = GetEnv("CATALOG_SESSION_HASH_KEY", cfg.SessionKeys.HashKey)
	cfg.SessionKeys.BlockKey = GetEnv("CATALOG_SESSION_BLOCK_KEY", cfg.SessionKeys.BlockKey)

	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	return cfg, nil
}
