// Package observability wires logging, tracing, and metrics for the
// application. Tracing and metrics ride on the OpenTelemetry APIs; the
// Prometheus registry feeds the /metrics endpoint and the watermill router
// metrics builder.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
)

// Config holds observability settings.
type Config struct {
	ServiceName    string `yaml:"service_name"`
	Environment    string `yaml:"environment"`
	MetricsAddress string `yaml:"metrics_address"`
}

// Registry bundles the per-module metrics interfaces.
type Registry struct {
	AttemptMetrics     metrics.AttemptMetrics
	ChallengeMetrics   metrics.ChallengeMetrics
	EngagementMetrics  metrics.EngagementMetrics
	LeaderboardMetrics metrics.LeaderboardMetrics
}

// Provider carries the observability components handed to modules.
type Provider struct {
	Logger             *slog.Logger
	Tracer             trace.Tracer
	Meter              metric.Meter
	Registry           Registry
	PrometheusRegistry *prometheus.Registry
}

// Init builds a Provider from config. The OTel globals are used as-is, so a
// deployment without a configured exporter gets no-op tracing while logging
// and Prometheus metrics keep working.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	tracer := otel.Tracer(cfg.ServiceName)
	meter := otel.Meter(cfg.ServiceName)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	promRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	attemptMetrics, err := metrics.NewAttemptMetrics(meter)
	if err != nil {
		return nil, err
	}
	challengeMetrics, err := metrics.NewChallengeMetrics(meter)
	if err != nil {
		return nil, err
	}
	engagementMetrics, err := metrics.NewEngagementMetrics(meter)
	if err != nil {
		return nil, err
	}
	leaderboardMetrics, err := metrics.NewLeaderboardMetrics(meter)
	if err != nil {
		return nil, err
	}

	return &Provider{
		Logger: logger,
		Tracer: tracer,
		Meter:  meter,
		Registry: Registry{
			AttemptMetrics:     attemptMetrics,
			ChallengeMetrics:   challengeMetrics,
			EngagementMetrics:  engagementMetrics,
			LeaderboardMetrics: leaderboardMetrics,
		},
		PrometheusRegistry: promRegistry,
	}, nil
}
