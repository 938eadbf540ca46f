package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"fieldedge/internal/domain"
)

type MetricDispatcher struct {
	inner   Executor
	metrics domain.Metrics
}

func NewMetricDispatcher(inner Executor, metrics domain.Metrics) *MetricDispatcher {
	return &MetricDispatcher{
		inner:   inner,
		metrics: metrics,
	}
}

func (m *MetricDispatcher) Dispatch(ctx context.Context, name string, arguments json.RawMessage) domain.ToolResult {
	return Envelope(m.Execute(ctx, name, arguments))
}

func (m *MetricDispatcher) Execute(ctx context.Context, name string, arguments json.RawMessage) (json.RawMessage, error) {
	start := time.Now()
	out, err := m.inner.Execute(ctx, name, arguments)
	m.observe(name, time.Since(start), err)
	return out, err
}

func (m *MetricDispatcher) observe(tool string, duration time.Duration, err error) {
	if m.metrics == nil {
		return
	}
	status, reason := classifyDispatchResult(err)
	m.metrics.ObserveDispatch(domain.DispatchMetric{
		Tool:     tool,
		Status:   status,
		Reason:   reason,
		Duration: duration,
	})
}

func classifyDispatchResult(err error) (domain.DispatchStatus, domain.DispatchReason) {
	if err == nil {
		return domain.DispatchStatusSuccess, domain.DispatchReasonSuccess
	}
	code, _ := domain.CodeFrom(err)
	switch code {
	case domain.CodeInvalidArgument:
		return domain.DispatchStatusError, domain.DispatchReasonInvalidArgument
	case domain.CodeUnknownTool:
		return domain.DispatchStatusError, domain.DispatchReasonUnknownTool
	case domain.CodeUpstream:
		return domain.DispatchStatusError, domain.DispatchReasonUpstream
	case domain.CodeTransport:
		if isTimeout(err) {
			return domain.DispatchStatusError, domain.DispatchReasonTimeout
		}
		return domain.DispatchStatusError, domain.DispatchReasonTransport
	}
	return domain.DispatchStatusError, domain.DispatchReasonInternal
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var (
	_ domain.Dispatcher = (*MetricDispatcher)(nil)
	_ Executor          = (*MetricDispatcher)(nil)
)
