package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/farellandr/secretsanta/config"
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/handlers"
	"github.com/farellandr/secretsanta/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires the HTTP surface. gatherer may be nil, in which case
// /metrics is not exposed.
func NewRouter(cfg *config.Config, svc *exchange.Service, gatherer prometheus.Gatherer, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	setupRoutes(r, svc, middleware.NewAdminAuthorizer(cfg.Admin(), logger))
	return r
}

func setupRoutes(r *gin.Engine, svc *exchange.Service, admin *middleware.AdminAuthorizer) {
	r.Use(middleware.ServiceMiddleware(svc))

	public := r.Group("/v1")
	{
		public.POST("/verify-code", handlers.VerifyCode)
	}

	protected := r.Group("/v1")
	protected.Use(admin.Middleware())
	adminRoutes(protected)

	pathSecret := r.Group("/v1/admin/:" + middleware.AdminSecretParam)
	pathSecret.Use(admin.Middleware())
	adminRoutes(pathSecret)
}

func adminRoutes(g *gin.RouterGroup) {
	events := g.Group("/events")
	{
		events.POST("", handlers.CreateEvent)
		events.GET("", handlers.ListEvents)
		events.GET("/:id", handlers.GetEvent)
		events.DELETE("/:id", handlers.DeleteEvent)
		events.POST("/:id/complete", handlers.CompleteEvent)
		events.POST("/:id/regenerate-codes", handlers.RegenerateCodes)
		events.POST("/:id/notify", handlers.NotifyEvent)

		participants := events.Group("/:id/participants")
		{
			participants.POST("", handlers.AddParticipant)
			participants.PATCH("/:participantId", handlers.UpdateParticipant)
			participants.DELETE("/:participantId", handlers.RemoveParticipant)
			participants.POST("/:participantId/regenerate-code", handlers.RegenerateCode)
		}
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.AdminSecretHeader, middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Run serves handler on the configured port until ctx is cancelled, then
// drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "component", "server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", "component", "server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
