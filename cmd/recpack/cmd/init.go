/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/recpack/pkg/config"
	"github.com/ssargent/recpack/pkg/fileio"
)

const sampleLayout = `name: vertex
fields:
  - name: id
    type: u32
  - name: position
    type: f32
    count: 3
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration with layout and archive directories",
	Long: `Create a configuration file and the directories it points to.

A sample "vertex" layout is written to the layout directory.

Examples:
  recpack init --dir ./recpack
  recpack init --dir ./recpack --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dir, _ := cmd.Flags().GetString("dir")
		force, _ := cmd.Flags().GetBool("force")
		return runInit(configPath, dir, force, cmd.OutOrStdout())
	},
}

func runInit(configPath, dir string, force bool, w io.Writer) error {
	if config.ConfigExists(configPath) && !force {
		_, err := fmt.Fprintf(w, "Configuration already exists at %s. Use --force to overwrite.\n", configPath)
		return err
	}

	cfg, err := config.BootstrapConfig(configPath, dir)
	if err != nil {
		return err
	}
	container.SetConfig(cfg)

	samplePath := filepath.Join(cfg.LayoutDir, "vertex.yaml")
	if err := fileio.Store(samplePath, []byte(sampleLayout)); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Configuration written to %s\nLayouts: %s\nArchive: %s\n",
		configPath, cfg.LayoutDir, cfg.ArchiveDir)
	return err
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("dir", "", "Base directory for layouts and archive")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
