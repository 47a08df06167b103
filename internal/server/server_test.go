package server_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/fanout/internal/api"
	"github.com/shaharia-lab/fanout/internal/server"
	svcmocks "github.com/shaharia-lab/fanout/internal/service/mocks"
	"github.com/shaharia-lab/fanout/internal/storage"
)

func newTestServer(t *testing.T, cfg server.Config) (*server.Server, *svcmocks.MockUserService) {
	t.Helper()
	users := new(svcmocks.MockUserService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	apiSrv := api.New(new(svcmocks.MockMessageService), new(svcmocks.MockNotificationLogService), users, logger)
	return server.New(apiSrv, cfg, logger), users
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, server.Config{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIMountedUnderPrefix(t *testing.T) {
	srv, users := newTestServer(t, server.Config{})
	users.On("ListUsers", mock.Anything).Return([]*storage.User{}, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, server.Config{})

	req := httptest.NewRequest(http.MethodOptions, "/api/messages", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv, users := newTestServer(t, server.Config{Registry: reg})
	users.On("GetUser", mock.Anything, int64(3)).Return(&storage.User{ID: 3}, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/api/users/{id}",status="200"} 1`), body)
}

func TestMetricsDisabledWithoutRegistry(t *testing.T) {
	srv, _ := newTestServer(t, server.Config{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, server.Config{Port: 0})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.NoError(t, <-done)
}
