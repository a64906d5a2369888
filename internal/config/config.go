// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultAddr      = ":8080"
	DefaultUploadDir = "uploads"
	DefaultLogLevel  = "info"
)

// Config holds the full configuration for the server.
type Config struct {
	// HTTP listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// PostgreSQL connection URL.
	DatabaseURL string `yaml:"database_url"`

	// Secret used to sign session cookies. Required.
	SessionSecret string `yaml:"session_secret"`

	// Directory uploaded attachment files are written to.
	UploadDir string `yaml:"upload_dir"`

	// Directory of static assets served under /static/. Optional.
	StaticDir string `yaml:"static_dir"`

	// OpenAI API key for remote summarization. Optional; when empty
	// the local fallback summarizer is always used.
	OpenAIAPIKey string `yaml:"openai_api_key"`

	// Log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load builds the configuration: defaults, then the optional YAML file
// at path, then environment variable overrides. A .env file in the
// working directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:      DefaultAddr,
		UploadDir: DefaultUploadDir,
		LogLevel:  DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is not set (DATABASE_URL)")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is not set (SESSION_SECRET)")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Addr, "TASKNEST_ADDR")
	setFromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	setFromEnv(&cfg.SessionSecret, "SESSION_SECRET")
	setFromEnv(&cfg.UploadDir, "UPLOAD_DIR")
	setFromEnv(&cfg.StaticDir, "STATIC_DIR")
	setFromEnv(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setFromEnv(&cfg.LogLevel, "LOG_LEVEL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
