package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/matsen/scholarsite/internal/config"
	"github.com/matsen/scholarsite/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Serve the site over HTTP, rendering pages from the current
publications file on each request.

The server adds a cookie-backed theme toggle at POST /theme/toggle,
a health check at /healthz, and Prometheus metrics at /metrics.

Examples:
  scholarsite serve
  scholarsite serve --addr localhost:3000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.SiteTitle, config.PublicationsPath(root), logger)
	if err := srv.ListenAndServe(ctx, serveAddr); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
