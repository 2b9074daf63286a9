package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/farellandr/secretsanta/config"
	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/helpers"
	"github.com/farellandr/secretsanta/internal/metrics"
	"github.com/farellandr/secretsanta/internal/middleware"
	"github.com/farellandr/secretsanta/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

func newTestRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "server.db"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	svc := exchange.New(store.New(db, logger),
		exchange.WithLogger(logger),
		exchange.WithMetrics(metrics.New(registry)),
	)
	cfg := &config.Config{AdminSecret: secret, CORSOrigins: []string{"*"}}
	return NewRouter(cfg, svc, registry, logger)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, secret string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(middleware.AdminSecretHeader, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type eventEnvelope struct {
	Event exchange.EventView `json:"event"`
}

func createOffice(t *testing.T, r http.Handler) exchange.EventView {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]any{
		"name": "Office 2025",
		"participants": []map[string]any{
			{"name": "Alice", "contact": "alice@example.com"},
			{"name": "Bob"},
			{"name": "Carol"},
		},
	}, testSecret)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[eventEnvelope](t, w).Event
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, testSecret)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	createOffice(t, r)
	w = doJSON(t, r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "secretsanta_events_created_total 1")
}

func TestAdminRoutesRequireSecret(t *testing.T) {
	r := newTestRouter(t, testSecret)

	w := doJSON(t, r, http.MethodGet, "/v1/events", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/events", nil, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/events", nil, testSecret)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/admin/"+testSecret+"/events", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/admin/wrong/events", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnconfiguredSecretDeniesAdmin(t *testing.T) {
	r := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodGet, "/v1/events", nil, "anything")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodGet, "/v1/admin/undefined/events", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEventLifecycle(t *testing.T) {
	r := newTestRouter(t, testSecret)
	event := createOffice(t, r)
	base := "/v1/events/" + event.ID.String()

	w := doJSON(t, r, http.MethodGet, base, nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[eventEnvelope](t, w).Event.Participants, 3)

	w = doJSON(t, r, http.MethodPost, base+"/participants", map[string]any{"name": "Dave"}, testSecret)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	added := decode[struct {
		Participant exchange.ParticipantView `json:"participant"`
	}](t, w).Participant

	w = doJSON(t, r, http.MethodPatch, base+"/participants/"+added.ID.String(), map[string]any{"name": "bob"}, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, helpers.CodeValidation, decode[helpers.ErrorResponse](t, w).Code)

	w = doJSON(t, r, http.MethodPost, base+"/participants/"+added.ID.String()+"/regenerate-code", nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, base+"/notify", nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, base+"/complete", nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	completed := decode[eventEnvelope](t, w).Event
	for _, p := range completed.Participants {
		require.NotNil(t, p.AssignedToName, p.Name)
		assert.NotEqual(t, p.Name, *p.AssignedToName)
	}

	w = doJSON(t, r, http.MethodPost, base+"/complete", nil, testSecret)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, helpers.CodeAlreadyCompleted, decode[helpers.ErrorResponse](t, w).Code)

	w = doJSON(t, r, http.MethodDelete, base+"/participants/"+added.ID.String(), nil, testSecret)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, base, nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, base, nil, testSecret)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEventErrors(t *testing.T) {
	r := newTestRouter(t, testSecret)

	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]any{
		"name":         "Solo",
		"participants": []map[string]any{{"name": "Alice"}},
	}, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, helpers.CodeValidation, decode[helpers.ErrorResponse](t, w).Code)

	createOffice(t, r)
	w = doJSON(t, r, http.MethodPost, "/v1/events", map[string]any{
		"name":         "Office 2025",
		"participants": []map[string]any{{"name": "X"}, {"name": "Y"}},
	}, testSecret)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, helpers.CodeEventNameTaken, decode[helpers.ErrorResponse](t, w).Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBufferString("{"))
	req.Header.Set(middleware.AdminSecretHeader, testSecret)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, helpers.CodeInvalidRequest, decode[helpers.ErrorResponse](t, rec).Code)

	w = doJSON(t, r, http.MethodGet, "/v1/events/not-a-uuid", nil, testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsufficientParticipantsStatus(t *testing.T) {
	r := newTestRouter(t, testSecret)
	w := doJSON(t, r, http.MethodPost, "/v1/events", map[string]any{
		"name":         "Pair",
		"participants": []map[string]any{{"name": "Alice"}, {"name": "Bob"}},
	}, testSecret)
	require.Equal(t, http.StatusCreated, w.Code)
	event := decode[eventEnvelope](t, w).Event
	base := "/v1/events/" + event.ID.String()

	w = doJSON(t, r, http.MethodDelete, base+"/participants/"+event.Participants[0].ID.String(), nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/complete", nil, testSecret)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, helpers.CodeInsufficientParticipants, decode[helpers.ErrorResponse](t, w).Code)
}

func TestVerifyCode(t *testing.T) {
	r := newTestRouter(t, testSecret)
	event := createOffice(t, r)
	code := event.Participants[0].AccessCode

	w := doJSON(t, r, http.MethodPost, "/v1/verify-code", map[string]any{"code": code}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[exchange.VerifyResult](t, w)
	assert.Equal(t, event.Participants[0].Name, result.Participant.Name)
	assert.Nil(t, result.AssignedToName)
	// only the holder's own data is returned
	assert.NotContains(t, w.Body.String(), event.Participants[1].AccessCode)

	w = doJSON(t, r, http.MethodPost, "/v1/verify-code", map[string]any{"code": "Office2025-00000000"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, helpers.CodeCodeNotFound, decode[helpers.ErrorResponse](t, w).Code)

	w = doJSON(t, r, http.MethodPost, "/v1/verify-code", map[string]any{"code": ""}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/events/"+event.ID.String()+"/complete", nil, testSecret)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/verify-code", map[string]any{"code": code}, "")
	require.Equal(t, http.StatusOK, w.Code)
	result = decode[exchange.VerifyResult](t, w)
	require.NotNil(t, result.AssignedToName)
	assert.NotEqual(t, event.Participants[0].Name, *result.AssignedToName)
}
