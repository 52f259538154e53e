/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/config"
	"github.com/ssargent/pngme/pkg/logging"
	"github.com/ssargent/pngme/pkg/png"
	"github.com/ssargent/pngme/pkg/pngfile"
)

// app carries what every subcommand needs
type app struct {
	config *config.Config
	logger *slog.Logger
	out    io.Writer
}

type appKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pngme",
	Short: "pngme - hide messages in PNG chunks",
	Long: `pngme reads the chunk stream of a PNG file and lets you add, read,
remove and list chunks without touching the image data.

Messages are stored in chunks of a type you choose, so they survive
viewers and most editors that ignore unknown ancillary chunks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		stashDir, _ := cmd.Flags().GetString("stash-dir")

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if stashDir != "" {
			cfg.Stash.DataDir = stashDir
		}

		logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, logging.Format(cfg.Logging.Format))
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}

		a := &app{config: cfg, logger: logger, out: cmd.OutOrStdout()}
		ctx := logging.WithLogger(cmd.Context(), logger)
		cmd.SetContext(context.WithValue(ctx, appKey{}, a))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/pngme/config.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("stash-dir", "", "Directory of the removed chunk stash")
}

// loadConfig reads an explicit config path, else the default path when it
// exists, else falls back to defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	if defaultPath := config.GetDefaultConfigPath(); config.ConfigExists(defaultPath) {
		return config.LoadConfig(defaultPath)
	}
	return config.DefaultConfig(), nil
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, fmt.Errorf("application not initialized")
	}
	return a, nil
}

// save writes image to path, taking a backup first when configured
func (a *app) save(path string, image *png.Png) error {
	backupPath, err := pngfile.Save(path, image, pngfile.Options{
		Backup:    a.config.Backup.Enabled,
		BackupDir: a.config.Backup.Dir,
	})
	if err != nil {
		return err
	}
	if backupPath != "" {
		a.logger.Info("backup written", "path", backupPath)
	}
	a.logger.Debug("file written", "path", path, "chunks", image.Len(), "bytes", image.Size())
	return nil
}

// load reads and parses the file at path
func (a *app) load(path string) (*png.Png, error) {
	image, err := pngfile.Load(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("file loaded", "path", path, "chunks", image.Len(), "bytes", image.Size())
	return image, nil
}
