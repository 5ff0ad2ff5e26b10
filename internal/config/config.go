// Package config provides configuration loading and structs for the nasari server.
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
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Data       DataConfig       `yaml:"data"`
	Similarity SimilarityConfig `yaml:"similarity"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DataConfig holds the paths of the two startup files. Either may be gzip
// (.gz) or zstd (.zst) compressed.
type DataConfig struct {
	// MappingPath is the WordNet 3.1 -> BabelNet mapping file.
	MappingPath string `yaml:"mapping_path"`
	// VectorsPath is the NASARI embedding file.
	VectorsPath string `yaml:"vectors_path"`
}

// SimilarityConfig holds settings for cosine similarity responses.
type SimilarityConfig struct {
	// Precision is the number of decimal places similarity scores are rounded to.
	// Zero rounds to an integer; unset means DefaultPrecision.
	Precision *int `yaml:"precision"`
}

// PrecisionOrDefault returns the configured precision, or DefaultPrecision when unset.
func (s *SimilarityConfig) PrecisionOrDefault() int {
	if s.Precision != nil {
		return *s.Precision
	}
	return DefaultPrecision
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Data.MappingPath = expandPath(cfg.Data.MappingPath, configDir)
	cfg.Data.VectorsPath = expandPath(cfg.Data.VectorsPath, configDir)

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

// Validate reports settings that cannot be served.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if p := c.Similarity.Precision; p != nil && (*p < 0 || *p > 15) {
		return fmt.Errorf("similarity precision must be between 0 and 15, got %d", *p)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
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
