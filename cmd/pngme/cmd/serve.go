/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/pngme/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that runs the chunk operations on uploaded images.

Endpoints:
  GET  /api/v1/health
  POST /api/v1/chunks
  POST /api/v1/encode?type=ruSt&message=...
  POST /api/v1/decode?type=ruSt
  POST /api/v1/remove?type=ruSt
  GET  /metrics

Examples:
  pngme serve --port=8080
  pngme serve --bind=0.0.0.0 --api-key=mysecretkey`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		serverConfig := api.ServerConfig{
			Bind:           a.config.Server.Bind,
			Port:           a.config.Server.Port,
			APIKey:         a.config.Server.APIKey,
			MaxUploadBytes: a.config.Server.MaxUploadBytes,
		}
		if cmd.Flags().Changed("port") {
			serverConfig.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			serverConfig.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			serverConfig.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if serverConfig.APIKey == "" {
			a.logger.Warn("no API key configured; the API is open to anyone who can reach it")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, a, serverConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
}

func serve(ctx context.Context, a *app, serverConfig api.ServerConfig) error {
	return api.StartServer(ctx, serverConfig, a.logger)
}
