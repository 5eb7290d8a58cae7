package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pulseboard/backend/internal/api/handlers"
	"github.com/wonny/pulseboard/backend/internal/insight"
	"github.com/wonny/pulseboard/backend/internal/kpi"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/pkg/config"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

func newServerConfig(port string) *config.Config {
	return &config.Config{
		Port: port,
		Env:  "development",
		API: config.APIConfig{
			RateLimitRPS:    100,
			RateLimitBurst:  100,
			MaxBodyBytes:    64,
			ReadTimeout:     3 * time.Second,
			WriteTimeout:    7 * time.Second,
			IdleTimeout:     11 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Engine: config.EngineConfig{InsightLimit: 3},
	}
}

func newAPIServer(cfg *config.Config) *Server {
	log := logger.Nop()
	builder := pipeline.NewBuilder(kpi.NewCalculator(kpi.DefaultThresholds()), insight.NewEngine(), cfg.Engine.InsightLimit, log)
	analysis := handlers.NewAnalysisHandler(builder, pipeline.NewLatest(), nil, log)
	return New(cfg, analysis, nil, log)
}

func TestNew_LimitsFromConfig(t *testing.T) {
	s := newAPIServer(newServerConfig("8089"))

	assert.Equal(t, ":8089", s.httpServer.Addr)
	assert.Equal(t, 3*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 3*time.Second, s.httpServer.ReadHeaderTimeout)
	assert.Equal(t, 7*time.Second, s.httpServer.WriteTimeout)
	assert.Equal(t, 11*time.Second, s.httpServer.IdleTimeout)
	assert.Equal(t, maxHeaderBytes, s.httpServer.MaxHeaderBytes)
}

func TestNew_ComposesRouter(t *testing.T) {
	s := newAPIServer(newServerConfig("0"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	// body cap from config applies to /api routes
	rec = httptest.NewRecorder()
	body := `{"datasets":[{"domain":"finance","rows":[{"amount":1,"date":"2024-01-01"}]}]}`
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// no metrics route without a collector
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := newAPIServer(newServerConfig("0"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	port := strconv.Itoa(busy.Addr().(*net.TCPAddr).Port)
	err = newAPIServer(newServerConfig(port)).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
