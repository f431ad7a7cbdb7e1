package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"igdash/internal/httpapi"
	"igdash/pkg/dashboard"
	"igdash/pkg/logger"
	"igdash/pkg/provider"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	Long: `Run the HTTP API consumed by the dashboard frontend.

Routes:
  POST /api/search    search accounts by username
  POST /api/profile   profile with engagement metrics
  POST /api/media     one page of posts and reels
  GET  /image-proxy   relay a media thumbnail
  GET  /health        liveness and uptime`,
	Example: `  # Listen on the default port 3001
  igdash serve

  # Production mode on another port
  igdash serve --port 8080 --env production`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default 3001)")
	serveCmd.Flags().StringVarP(&env, "env", "e", "", "environment (development, production)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.WithFields(map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Environment,
		"provider":    cfg.Provider.Host,
	}).Info("igdash starting")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Server.Environment,
			Release:     "igdash@" + version,
		}); err != nil {
			logger.WithError(err).Warn("error reporting disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	client := provider.NewClient(cfg.Provider, logger.WithField("component", "provider"))
	svc := dashboard.NewService(client, cfg.Analytics.SampleSize, logger.WithField("component", "dashboard"))
	server := httpapi.NewServer(svc, cfg, logger.WithField("component", "httpapi"))

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}

// commandContext returns the command context, or Background when run outside Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
