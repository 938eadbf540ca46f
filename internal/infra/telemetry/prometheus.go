package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fieldedge/internal/domain"
)

type PrometheusMetrics struct {
	dispatchDuration *prometheus.HistogramVec
	dispatchTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldedge_tool_dispatch_duration_seconds",
				Help:    "Duration of tool dispatches in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"tool", "status", "reason"},
		),
		dispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldedge_tool_dispatch_total",
				Help: "Total number of tool dispatches",
			},
			[]string{"tool", "status"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldedge_upstream_request_duration_seconds",
				Help:    "Duration of FieldEdge API requests in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "status_class"},
		),
		upstreamTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldedge_upstream_requests_total",
				Help: "Total number of FieldEdge API requests",
			},
			[]string{"method", "status_code"},
		),
	}
}

func (p *PrometheusMetrics) ObserveDispatch(metric domain.DispatchMetric) {
	status := string(metric.Status)
	if status == "" {
		status = string(domain.DispatchStatusSuccess)
	}
	reason := string(metric.Reason)
	if reason == "" {
		reason = string(domain.DispatchReasonSuccess)
	}
	p.dispatchDuration.WithLabelValues(metric.Tool, status, reason).Observe(metric.Duration.Seconds())
	p.dispatchTotal.WithLabelValues(metric.Tool, status).Inc()
}

func (p *PrometheusMetrics) ObserveUpstream(metric domain.UpstreamMetric) {
	p.upstreamDuration.WithLabelValues(metric.Method, statusClass(metric.StatusCode)).Observe(metric.Duration.Seconds())
	p.upstreamTotal.WithLabelValues(metric.Method, strconv.Itoa(metric.StatusCode)).Inc()
}

// statusClass buckets HTTP statuses as 2xx..5xx; zero means no response.
func statusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	return strconv.Itoa(code/100) + "xx"
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
