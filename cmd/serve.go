package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/farellandr/secretsanta/config"
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/metrics"
	"github.com/farellandr/secretsanta/internal/notifier"
	"github.com/farellandr/secretsanta/internal/server"
	"github.com/farellandr/secretsanta/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and run the HTTP server",
		RunE:  serveRun,
	}
}

func serveRun(cmd *cobra.Command, _ []string) error {
	logger := config.NewLogger(cfg, globalFlags.debug)
	if !globalFlags.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.AdminSecret == "" {
		logger.Warn("ADMIN_SECRET_PATH is not set, every admin request will be rejected",
			"component", programName,
		)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := exchange.New(
		store.New(db, logger),
		exchange.WithLogger(logger),
		exchange.WithMetrics(metrics.New(registry)),
		exchange.WithNotifier(newNotifier(cfg, logger)),
		exchange.WithBaseURL(cfg.BaseURL),
		exchange.WithNotifyConcurrency(cfg.NotifyConcurrency),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := server.NewRouter(cfg, svc, registry, logger)
	return server.Run(ctx, cfg, router, logger)
}

func newNotifier(cfg *config.Config, logger *slog.Logger) notifier.Notifier {
	if !cfg.EmailConfigured() {
		logger.Info("MAILERSEND_API_KEY is not set, notifications will only be logged",
			"component", programName,
		)
		return notifier.NewLogOnly(logger)
	}
	return notifier.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromEmail, cfg.MailFromName, logger)
}
