package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synack/internal/archive"
	"synack/internal/config"
	"synack/internal/observability"
	"synack/internal/server"
	"synack/pkg/cli"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	archivePath   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the decode HTTP service",
	Long: `Run the HTTP service that decodes reports on demand.

The service exposes POST /v1/decode, a Prometheus /metrics endpoint,
and, when an archive is configured, GET /v1/reports for retrieving
previously decoded reports. Configuration comes from SYNACK_*
environment variables; flags override individual settings.

Examples:
  # Listen on the default address
  synack serve

  # Override the listen address and archive location
  synack serve --listen 0.0.0.0:9090 --archive /var/lib/synack/archive.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&serveFlags.archivePath, "archive", "", "override archive database path")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	if serveFlags.listenAddress != "" {
		cfg.HTTPAddr = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.LogLevel = serveFlags.logLevel
	}
	if serveFlags.archivePath != "" {
		cfg.ArchivePath = serveFlags.archivePath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	metrics := observability.NewMetrics()

	var store *archive.Store
	var retention *archive.Retention
	if cfg.ArchivePath != "" {
		store, err = archive.Open(cfg.ArchivePath, logger)
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer store.Close()

		retention = archive.NewRetention(store, cfg.RetentionSchedule, cfg.RetentionMaxAge, logger,
			func(removed int64) { metrics.PrunedReports.Add(float64(removed)) })
	}

	srv := server.New(cfg.HTTPAddr, store, metrics, logger)

	ctx := cli.SetupSignalHandler()
	if retention != nil {
		if err := retention.Start(ctx); err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer retention.Stop()
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	fmt.Printf("✓ Server listening on %s\n", cfg.HTTPAddr)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.HTTPAddr)
	fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.HTTPAddr)
	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-errChan:
		return cli.NewCommandError("serve", err)
	case <-ctx.Done():
		fmt.Println("\nShutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			return cli.NewCommandError("serve", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}
