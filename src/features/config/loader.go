package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// An empty path or a missing file yields the default configuration.
func Load(path string) (*Manager, error) {
	if path == "" {
		return NewManager(createDefaultConfig()), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, using default configuration", "path", path)
		return NewManager(createDefaultConfig()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Start from the defaults so a partial file only overrides what it names.
	cfg := createDefaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Override with environment variables if set
	if ua := os.Getenv("LYRICFETCH_USER_AGENT"); ua != "" {
		cfg.Network.UserAgent = ua
	}
	if level := os.Getenv("LYRICFETCH_LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return NewManager(cfg), nil
}
