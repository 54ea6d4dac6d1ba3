// Package config loads and persists the runner configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zx0223winner/peppro/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the runner configuration
type Config struct {
	PipelinePath string         `yaml:"pipeline_path"` // External pipeline script
	GenomeConfig string         `yaml:"genome_config"` // Refgenie genome config file
	OutputParent string         `yaml:"output_parent"` // Parent dir for per-sample results
	Database     DatabaseConfig `yaml:"database"`      // Run log settings
	Search       SearchConfig   `yaml:"search"`        // Sample search index
	Compute      ComputeConfig  `yaml:"compute"`       // Scheduler resource profiles
}

// DatabaseConfig contains run log database settings
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	CacheSize   int    `yaml:"cache_size"`   // in KB
	JournalMode string `yaml:"journal_mode"` // WAL
}

// SearchConfig contains sample search index settings
type SearchConfig struct {
	Enabled      bool   `yaml:"enabled"`       // Enable Bleve search
	IndexPath    string `yaml:"index_path"`    // Path to Bleve index
	DefaultLimit int    `yaml:"default_limit"` // Default result limit
	BatchSize    int    `yaml:"batch_size"`    // Indexing batch size
}

// ComputeConfig holds the named resource profiles a scheduler can grant.
type ComputeConfig struct {
	DefaultProfile string                    `yaml:"default_profile"`
	Profiles       map[string]ComputeProfile `yaml:"profiles"`
}

// ComputeProfile is one cores/memory grant.
type ComputeProfile struct {
	Cores string `yaml:"cores"`
	Mem   string `yaml:"mem"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PipelinePath: "pipelines/peppro.py",
		GenomeConfig: paths.GetGenomeConfigPath(),
		OutputParent: "peppro_output",
		Database: DatabaseConfig{
			Path:        paths.GetDatabasePath(),
			CacheSize:   10000, // 40MB
			JournalMode: "WAL",
		},
		Search: SearchConfig{
			Enabled:      true,
			IndexPath:    paths.GetIndexPath(),
			DefaultLimit: 100,
			BatchSize:    500,
		},
		Compute: ComputeConfig{
			DefaultProfile: "default",
			Profiles: map[string]ComputeProfile{
				"default": {Cores: "4", Mem: "16000"},
				"local":   {Cores: "1", Mem: "8000"},
				"large":   {Cores: "16", Mem: "64000"},
			},
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Return defaults if file doesn't exist
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate and expand paths
	config.PipelinePath = expandPath(config.PipelinePath)
	config.GenomeConfig = expandPath(config.GenomeConfig)
	config.OutputParent = expandPath(config.OutputParent)
	config.Database.Path = expandPath(config.Database.Path)
	config.Search.IndexPath = expandPath(config.Search.IndexPath)

	if config.Compute.DefaultProfile == "" {
		config.Compute.DefaultProfile = "default"
	}

	return config, nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("PEPPRO_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("peppro.yaml"); err == nil {
		return "peppro.yaml"
	}

	// Use default location
	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// Profile returns the named compute profile, falling back to the default
// profile when name is empty.
func (c *Config) Profile(name string) (ComputeProfile, error) {
	if name == "" {
		name = c.Compute.DefaultProfile
	}
	p, ok := c.Compute.Profiles[name]
	if !ok {
		return ComputeProfile{}, fmt.Errorf("unknown compute profile %q", name)
	}
	if p.Cores == "" || p.Mem == "" {
		return ComputeProfile{}, fmt.Errorf("compute profile %q is incomplete", name)
	}
	return p, nil
}

// EnsureDirectories creates necessary directories
func (c *Config) EnsureDirectories() error {
	// First ensure base directories using paths package
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	// Then ensure any custom directories from config
	dirs := []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Search.IndexPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
