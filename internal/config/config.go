// Package config loads the catalog settings.
//
// Values are layered: built-in defaults, then the YAML file (if present), then
// CATALOG_* environment variables. Command-line flags are applied last by
// the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CATALOG_DATABASE_PATH.
const EnvPrefix = "CATALOG"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Logger   LoggerConfig   `yaml:"logger"`
	Web      WebConfig      `yaml:"web"`
}

// DatabaseConfig locates the product database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
	// Seed inserts the default products into an empty table at startup.
	Seed bool `yaml:"seed"`
}

// SessionConfig locates the nickname file and sets the welcome credentials.
type SessionConfig struct {
	Path            string `yaml:"path"`
	WelcomeName     string `yaml:"welcome_name" split_words:"true"`
	WelcomePassword string `yaml:"welcome_password" split_words:"true"`
}

// LoggerConfig selects the zap configuration.
type LoggerConfig struct {
	Mode       string `yaml:"mode"` // "development" | "production"
	FileEnable bool   `yaml:"file_enable" split_words:"true"`
	Filename   string `yaml:"filename"`
}

// WebConfig configures the HTTP API.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "catalog.db",
			Seed: true,
		},
		Session: SessionConfig{
			Path:            "session.db",
			WelcomeName:     "Aluno",
			WelcomePassword: "123",
		},
		Logger: LoggerConfig{
			Mode:     "development",
			Filename: "catalog.log",
		},
		Web: WebConfig{
			Addr: ":8080",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := decodeYAML(data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the application cannot start with.
func (c Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Session.Path == "" {
		return errors.New("session.path is required")
	}
	switch c.Logger.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("logger.mode %q: must be development or production", c.Logger.Mode)
	}
	if c.Logger.FileEnable && c.Logger.Filename == "" {
		return errors.New("logger.filename is required when logger.file_enable is set")
	}
	return nil
}

// decodeYAML overlays data onto cfg, rejecting unknown keys.
func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
