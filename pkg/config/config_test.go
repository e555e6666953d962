package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./layouts", config.LayoutDir)
	assert.Equal(t, "./archive", config.ArchiveDir)
	assert.False(t, config.StrictBudget)
	assert.Empty(t, config.Metrics.File)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expectedConfig := &Config{
			LayoutDir:    "/custom/layouts",
			ArchiveDir:   "/custom/archive",
			StrictBudget: true,
			Metrics: Metrics{
				File: "/var/lib/node_exporter/recpack.prom",
			},
			Logging: Logging{
				Level:  "debug",
				Format: "json",
			},
		}

		err := SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("strict_budget: true\n"), 0600))

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.True(t, loadedConfig.StrictBudget)
		assert.Equal(t, "./layouts", loadedConfig.LayoutDir)
		assert.Equal(t, "info", loadedConfig.Logging.Level)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := DefaultConfig()

	err := SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "./layouts", raw["layout_dir"])
	assert.Contains(t, raw, "strict_budget")
}

func TestBootstrapConfig(t *testing.T) {
	baseDir := t.TempDir()
	configPath := filepath.Join(baseDir, "config.yaml")

	config, err := BootstrapConfig(configPath, baseDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(baseDir, "layouts"), config.LayoutDir)
	assert.Equal(t, filepath.Join(baseDir, "archive"), config.ArchiveDir)
	assert.DirExists(t, config.LayoutDir)
	assert.DirExists(t, config.ArchiveDir)
	assert.True(t, ConfigExists(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestResolveLayout(t *testing.T) {
	config := &Config{LayoutDir: "/etc/recpack/layouts"}

	assert.Equal(t, "/etc/recpack/layouts/vertex.yaml", config.ResolveLayout("vertex"))
	assert.Equal(t, "vertex.yaml", config.ResolveLayout("vertex.yaml"))
	assert.Equal(t, "mesh.yml", config.ResolveLayout("mesh.yml"))
	assert.Equal(t, "./vertex", config.ResolveLayout("./vertex"))
	assert.Equal(t, "/tmp/x.yaml", config.ResolveLayout("/tmp/x.yaml"))
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
}

func TestConfigExists(t *testing.T) {
	assert.False(t, ConfigExists(filepath.Join(t.TempDir(), "nope.yaml")))
}
