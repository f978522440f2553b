package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

const probeTimeout = 2 * time.Second

const healthPath = "/healthz"

// HealthHandler exposes the gRPC health service over HTTP at /healthz.
// ?service=<name> checks a single dependency.
func HealthHandler(checker healthpb.HealthServer) (http.Handler, error) {
	mux, err := healthMux(healthPath, checker)
	if err != nil {
		return nil, err
	}
	return mux, nil
}

func healthMux(path string, checker healthpb.HealthServer) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux()
	err := mux.HandlePath(http.MethodGet, path, func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resp, err := checker.Check(r.Context(), &healthpb.HealthCheckRequest{Service: r.URL.Query().Get("service")})
		if err != nil {
			runtime.HTTPError(r.Context(), mux, &runtime.JSONPb{}, w, r, err)
			return
		}
		body, err := protojson.Marshal(resp)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, &runtime.JSONPb{}, w, r, err)
			return
		}

		status := http.StatusOK
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
	if err != nil {
		return nil, fmt.Errorf("register health handler at %q: %w", path, err)
	}
	return mux, nil
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe is a named dependency. Its name doubles as the health service name.
type Probe struct {
	Name   string
	Pinger Pinger
}

// Prober pings every dependency on an interval and mirrors the result into
// the health server. The overall ("") status is SERVING only when every
// probe succeeds.
type Prober struct {
	health   *health.Server
	probes   []Probe
	interval time.Duration
	logger   *zap.Logger
}

func NewProber(healthSrv *health.Server, interval time.Duration, logger *zap.Logger, probes ...Probe) *Prober {
	return &Prober{health: healthSrv, probes: probes, interval: interval, logger: logger}
}

func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

func (p *Prober) check(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING
	for _, probe := range p.probes {
		status := healthpb.HealthCheckResponse_SERVING
		pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		if err := probe.Pinger.Ping(pingCtx); err != nil {
			p.logger.Warn("dependency unhealthy", zap.String("dependency", probe.Name), zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
		}
		cancel()
		p.health.SetServingStatus(probe.Name, status)
	}
	p.health.SetServingStatus("", overall)
}
