package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/farellandr/secretsanta/config"
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/helpers"
	"github.com/gin-gonic/gin"
)

const (
	AdminSecretHeader = "X-Admin-Secret"
	AdminSecretParam  = "secret"
)

var errAdminNotConfigured = fmt.Errorf("%w: admin secret is not configured", exchange.ErrUnauthorized)

// AdminAuthorizer compares a presented shared secret with the configured one.
type AdminAuthorizer struct {
	secret []byte
	logger *slog.Logger
}

func NewAdminAuthorizer(cfg config.AdminConfig, logger *slog.Logger) *AdminAuthorizer {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &AdminAuthorizer{
		secret: []byte(cfg.Secret),
		logger: logger,
	}
}

// Authorize denies everything while no secret is configured.
func (a *AdminAuthorizer) Authorize(candidate string) error {
	if len(a.secret) == 0 {
		return errAdminNotConfigured
	}
	if candidate == "" || subtle.ConstantTimeCompare([]byte(candidate), a.secret) != 1 {
		return exchange.ErrUnauthorized
	}
	return nil
}

// Middleware accepts the secret from the X-Admin-Secret header or from the
// :secret path segment of /admin/:secret routes.
func (a *AdminAuthorizer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := c.GetHeader(AdminSecretHeader)
		if candidate == "" {
			candidate = c.Param(AdminSecretParam)
		}
		if err := a.Authorize(candidate); err != nil {
			if errors.Is(err, errAdminNotConfigured) {
				a.logger.Error("admin request rejected: ADMIN_SECRET_PATH not configured",
					"component", "server",
					"path", c.FullPath(),
				)
			}
			helpers.RespondWithError(c, http.StatusUnauthorized, helpers.CodeUnauthorized, "Unauthorized.")
			return
		}
		c.Next()
	}
}
