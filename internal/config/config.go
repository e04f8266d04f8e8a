package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	CatalogPath string `koanf:"catalog_path"` // JSON catalog file; empty uses the embedded catalog

	// Suggestion service (enables the suggestions popup when configured)
	Suggest SuggestConfig `koanf:"suggest"`

	// Log settings
	Log LogConfig `koanf:"log"`
}

// SuggestConfig holds suggestion-service configuration.
type SuggestConfig struct {
	Endpoint string `koanf:"endpoint"` // chat-completions URL
	APIKey   string `koanf:"api_key"`
	Model    string `koanf:"model"`
}

// LogConfig holds log destination and level.
type LogConfig struct {
	File  string `koanf:"file"`  // empty disables logging
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.CatalogPath = expandPath(cfg.CatalogPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	// Normalize endpoint (remove trailing slash)
	cfg.Suggest.Endpoint = strings.TrimSuffix(cfg.Suggest.Endpoint, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tuneflow/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tuneflow", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasSuggestConfig returns true if the suggestion service is configured.
func (c *Config) HasSuggestConfig() bool {
	return c.Suggest.Endpoint != ""
}
