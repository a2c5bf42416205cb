// Package config provides configuration loading and structs for the pantry server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Datasets DatasetsConfig `yaml:"datasets"`
	Suggest  SuggestConfig  `yaml:"suggest"`
	Insights InsightsConfig `yaml:"insights"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the database and the product search index.
type StorageConfig struct {
	DatabasePath     string `yaml:"database_path"`
	ProductIndexPath string `yaml:"product_index_path"`
}

// DatasetsConfig holds paths to the recipe and product datasets.
// RecipesPath may point at a .csv or .xlsx file.
type DatasetsConfig struct {
	RecipesPath  string `yaml:"recipes_path"`
	ProductsPath string `yaml:"products_path"`
	Watch        *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether dataset files should be watched for changes;
// defaults to true when unset.
func (d *DatasetsConfig) WatchOrDefault() bool {
	if d.Watch != nil {
		return *d.Watch
	}
	return true
}

// SuggestConfig holds recipe search settings.
type SuggestConfig struct {
	AutocompleteLimit int `yaml:"autocomplete_limit"`
}

// InsightsConfig holds cart-analysis service settings.
type InsightsConfig struct {
	BaseURL        string `yaml:"base_url"`
	Persona        string `yaml:"persona"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.ProductIndexPath = expandPath(cfg.Storage.ProductIndexPath, configDir)
	if cfg.Datasets.RecipesPath != "" {
		cfg.Datasets.RecipesPath = expandPath(cfg.Datasets.RecipesPath, configDir)
	}
	if cfg.Datasets.ProductsPath != "" {
		cfg.Datasets.ProductsPath = expandPath(cfg.Datasets.ProductsPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
