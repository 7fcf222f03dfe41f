// Package config loads client configuration.
//
// Precedence, highest first: CSPACE_* environment variables, the YAML
// config file (~/.config/cspace/config.yaml by default), hardcoded
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config is the full client configuration.
type Config struct {
	API   APIConfig   `koanf:"api"`
	Log   LogConfig   `koanf:"log"`
	Store StoreConfig `koanf:"store"`
}

// APIConfig points the client at a backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
}

// LogConfig controls the diagnostic log file. The TUI owns the
// terminal, so logs never go to stdout.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// StoreConfig locates the local settings database.
type StoreConfig struct {
	Path string `koanf:"path"`
}

func defaults() Config {
	return Config{
		API: APIConfig{BaseURL: "http://localhost:5454"},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cspace", "config.yaml"), nil
}

// Load reads configuration from the given YAML file (the default path
// when empty) and overlays CSPACE_* environment variables.
//
//	CSPACE_API_BASE_URL -> api.base_url
//	CSPACE_LOG_LEVEL    -> log.level
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		var err error
		configPath, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := k.Load(env.Provider("CSPACE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "CSPACE_"))
		// First underscore separates section from field: API_BASE_URL
		// becomes api.base_url.
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url must not be empty")
	}
	return cfg, nil
}
