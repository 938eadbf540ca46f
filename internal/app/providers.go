package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/config"
	"fieldedge/internal/infra/dispatch"
	"fieldedge/internal/infra/fieldedge"
	"fieldedge/internal/infra/gateway"
	"fieldedge/internal/infra/telemetry"
	"fieldedge/internal/infra/tools"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

// NewConfig loads configuration and applies command-line overrides.
func NewConfig(ctx context.Context, cfg ServeConfig, logger *zap.Logger) (config.Config, error) {
	loaded, err := config.NewLoader(logger).Load(ctx, cfg.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.UIDir != "" {
		loaded.UIDir = cfg.UIDir
	}
	if obs := cfg.Observability; obs != nil {
		if obs.MetricsEnabled != nil {
			loaded.Observability.MetricsEnabled = *obs.MetricsEnabled
		}
		if obs.HealthzEnabled != nil {
			loaded.Observability.HealthzEnabled = *obs.HealthzEnabled
		}
		if obs.ListenAddress != "" {
			loaded.Observability.ListenAddress = obs.ListenAddress
		}
	}
	return loaded, nil
}

func NewFieldEdgeClient(cfg config.Config, metrics domain.Metrics, health *telemetry.HealthTracker, logger *zap.Logger) (*fieldedge.Client, error) {
	return fieldedge.NewClient(cfg.Client,
		fieldedge.WithLogger(logger),
		fieldedge.WithMetrics(metrics),
		fieldedge.WithHealth(health),
	)
}

func NewToolRegistry() (*tools.Registry, error) {
	return tools.NewDefaultRegistry()
}

func NewDispatcher(registry *tools.Registry, client *fieldedge.Client, metrics domain.Metrics, logger *zap.Logger) *dispatch.MetricDispatcher {
	core := dispatch.New(registry, client, dispatch.Options{Logger: logger})
	return dispatch.NewMetricDispatcher(core, metrics)
}

func NewGateway(dispatcher *dispatch.MetricDispatcher, registry *tools.Registry, cfg config.Config, logger *zap.Logger) *gateway.Gateway {
	return gateway.NewGateway(dispatcher, registry.Definitions(), gateway.Options{
		UIDir:  cfg.UIDir,
		Logger: logger,
	})
}
