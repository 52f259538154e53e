/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default settings and a generated API key
for 'pngme serve'.

The file goes to --config, or ~/.config/pngme/config.yaml.

Examples:
  pngme init
  pngme init --config ./pngme.yaml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		configPath, _ := cmd.Flags().GetString("config")
		stashDir, _ := cmd.Flags().GetString("stash-dir")
		force, _ := cmd.Flags().GetBool("force")
		return runInit(a, configPath, stashDir, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func runInit(a *app, configPath, stashDir string, force bool) error {
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
	}

	cfg, err := config.BootstrapConfig(configPath, stashDir)
	if err != nil {
		return err
	}

	a.logger.Debug("config written", "path", configPath)
	fmt.Fprintf(a.out, "Configuration written to %s\n", configPath)
	fmt.Fprintf(a.out, "Stash directory: %s\n", cfg.Stash.DataDir)
	fmt.Fprintf(a.out, "Server API key: %s\n", cfg.Server.APIKey)
	return nil
}
