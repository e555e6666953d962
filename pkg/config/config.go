/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the recpack configuration
type Config struct {
	LayoutDir    string  `yaml:"layout_dir"`
	ArchiveDir   string  `yaml:"archive_dir"`
	StrictBudget bool    `yaml:"strict_budget"`
	Metrics      Metrics `yaml:"metrics"`
	Logging      Logging `yaml:"logging"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	// File receives codec metrics in the Prometheus text format after each
	// command. Empty disables the export.
	File string `yaml:"file"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		LayoutDir:  "./layouts",
		ArchiveDir: "./archive",
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration rooted at baseDir and
// creates its layout and archive directories.
func BootstrapConfig(configPath string, baseDir string) (*Config, error) {
	config := DefaultConfig()
	if baseDir != "" {
		config.LayoutDir = filepath.Join(baseDir, "layouts")
		config.ArchiveDir = filepath.Join(baseDir, "archive")
	}

	for _, dir := range []string{config.LayoutDir, config.ArchiveDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// ResolveLayout maps a layout reference to a file. A reference containing a
// path separator or a .yaml/.yml extension is used as is; a bare name is
// looked up in LayoutDir.
func (c *Config) ResolveLayout(ref string) string {
	if strings.ContainsRune(ref, filepath.Separator) || strings.ContainsRune(ref, '/') {
		return ref
	}
	switch filepath.Ext(ref) {
	case ".yaml", ".yml":
		return ref
	}
	return filepath.Join(c.LayoutDir, ref+".yaml")
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./recpack.yaml"
	}

	// For Linux/macOS, use ~/.config/recpack/config.yaml
	configDir := filepath.Join(homeDir, ".config", "recpack")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
