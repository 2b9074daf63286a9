package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farellandr/secretsanta/config"
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthorize(t *testing.T) {
	a := NewAdminAuthorizer(config.AdminConfig{Secret: "s3cret"}, nil)
	require.NoError(t, a.Authorize("s3cret"))
	require.ErrorIs(t, a.Authorize("wrong"), exchange.ErrUnauthorized)
	require.ErrorIs(t, a.Authorize(""), exchange.ErrUnauthorized)
	require.ErrorIs(t, a.Authorize("s3cret "), exchange.ErrUnauthorized)
}

func TestAuthorizeWithoutSecretDeniesAll(t *testing.T) {
	a := NewAdminAuthorizer(config.AdminConfig{}, nil)
	for _, candidate := range []string{"", "anything", "undefined"} {
		require.ErrorIs(t, a.Authorize(candidate), exchange.ErrUnauthorized, candidate)
	}
}

func newAdminRouter(secret string) *gin.Engine {
	a := NewAdminAuthorizer(config.AdminConfig{Secret: secret}, nil)
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/events", a.Middleware(), ok)
	r.GET("/admin/:secret/events", a.Middleware(), ok)
	return r
}

func TestAdminMiddleware(t *testing.T) {
	testDefs := []struct {
		name     string
		secret   string
		path     string
		header   string
		expected int
	}{
		{name: "header ok", secret: "s3cret", path: "/events", header: "s3cret", expected: http.StatusNoContent},
		{name: "header wrong", secret: "s3cret", path: "/events", header: "nope", expected: http.StatusUnauthorized},
		{name: "header missing", secret: "s3cret", path: "/events", expected: http.StatusUnauthorized},
		{name: "path ok", secret: "s3cret", path: "/admin/s3cret/events", expected: http.StatusNoContent},
		{name: "path wrong", secret: "s3cret", path: "/admin/nope/events", expected: http.StatusUnauthorized},
		{name: "not configured", secret: "", path: "/admin/anything/events", header: "anything", expected: http.StatusUnauthorized},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			r := newAdminRouter(testDef.secret)
			req := httptest.NewRequest(http.MethodGet, testDef.path, nil)
			if testDef.header != "" {
				req.Header.Set(AdminSecretHeader, testDef.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, testDef.expected, w.Code)
			if testDef.expected == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(discardLogger()))
	r.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(requestIDKey)
		c.String(http.StatusOK, id.(string))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
