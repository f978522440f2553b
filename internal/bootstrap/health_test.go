package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func healthy(context.Context) error { return nil }

func TestHealthHandler(t *testing.T) {
	healthSrv := health.NewServer()
	handler, err := HealthHandler(healthSrv)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"SERVING"}`, w.Body.String())

	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"NOT_SERVING"}`, w.Body.String())
}

func TestHealthHandler_UnknownService(t *testing.T) {
	handler, err := HealthHandler(health.NewServer())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz?service=ledger", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler_MountedInGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler, err := HealthHandler(health.NewServer())
	require.NoError(t, err)
	router.GET("/healthz", gin.WrapH(handler))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthMux_InvalidPattern(t *testing.T) {
	mux, err := healthMux("healthz", health.NewServer())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"healthz"`)
	assert.Nil(t, mux)
}

func TestProber_Check(t *testing.T) {
	healthSrv := health.NewServer()
	prober := NewProber(healthSrv, time.Minute, zap.NewNop(),
		Probe{Name: "postgres", Pinger: pingerFunc(healthy)},
		Probe{Name: "redis", Pinger: pingerFunc(func(context.Context) error { return errors.New("connection refused") })},
	)

	prober.check(context.Background())

	assertStatus(t, healthSrv, "postgres", healthpb.HealthCheckResponse_SERVING)
	assertStatus(t, healthSrv, "redis", healthpb.HealthCheckResponse_NOT_SERVING)
	assertStatus(t, healthSrv, "", healthpb.HealthCheckResponse_NOT_SERVING)
}

func TestProber_RecoversWhenDependencyReturns(t *testing.T) {
	healthSrv := health.NewServer()
	down := true
	prober := NewProber(healthSrv, time.Minute, zap.NewNop(),
		Probe{Name: "kafka", Pinger: pingerFunc(func(context.Context) error {
			if down {
				return errors.New("no brokers")
			}
			return nil
		})},
	)

	prober.check(context.Background())
	assertStatus(t, healthSrv, "", healthpb.HealthCheckResponse_NOT_SERVING)

	down = false
	prober.check(context.Background())
	assertStatus(t, healthSrv, "", healthpb.HealthCheckResponse_SERVING)
	assertStatus(t, healthSrv, "kafka", healthpb.HealthCheckResponse_SERVING)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		HTTP: config.HTTPConfig{Address: "127.0.0.1:0", ShutdownTimeoutSeconds: 1},
		GRPC: config.GRPCConfig{Address: "127.0.0.1:0"},
	}
	healthSrv := health.NewServer()
	servers := NewServers(cfg, http.NotFoundHandler(), healthSrv)
	prober := NewProber(healthSrv, 10*time.Millisecond, zap.NewNop(), Probe{Name: "postgres", Pinger: pingerFunc(healthy)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, servers, prober, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func assertStatus(t *testing.T, healthSrv *health.Server, service string, want healthpb.HealthCheckResponse_ServingStatus) {
	t.Helper()
	resp, err := healthSrv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	assert.Equal(t, want, resp.GetStatus())
}
