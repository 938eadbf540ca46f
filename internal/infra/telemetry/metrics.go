package telemetry

import "fieldedge/internal/domain"

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveDispatch(_ domain.DispatchMetric) {}

func (n *NoopMetrics) ObserveUpstream(_ domain.UpstreamMetric) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
