/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/recpack/pkg/config"
	"github.com/ssargent/recpack/pkg/di"
	"github.com/ssargent/recpack/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by all commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recpack",
	Short: "recpack - fixed-layout binary record tool",
	Long: `recpack reads and writes raw binary files made of fixed-layout records.

Record layouts are declared in YAML as an ordered list of numeric fields.
Values are stored in the host's native byte order with no header or padding.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		configPath, _ := cmd.Flags().GetString("config")
		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if dir, _ := cmd.Flags().GetString("layout-dir"); dir != "" {
			cfg.LayoutDir = dir
		}
		if dir, _ := cmd.Flags().GetString("archive-dir"); dir != "" {
			cfg.ArchiveDir = dir
		}
		container.SetConfig(cfg)

		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		container.SetLogger(logger)

		logger.Debug("configuration loaded",
			zap.String("config", configPath),
			zap.String("layout_dir", cfg.LayoutDir),
			zap.Bool("strict_budget", cfg.StrictBudget))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return flushMetrics(container)
	},
}

// flushMetrics writes the metrics textfile when one is configured
func flushMetrics(c *di.Container) error {
	path := c.GetConfig().Metrics.File
	if path == "" {
		return nil
	}
	if err := c.GetMetrics().WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	c.GetLogger().Debug("metrics written", zap.String("path", path))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if container != nil {
		_ = container.GetLogger().Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("layout-dir", "", "Directory holding layout files")
	rootCmd.PersistentFlags().String("archive-dir", "", "Directory holding the buffer archive")
}
