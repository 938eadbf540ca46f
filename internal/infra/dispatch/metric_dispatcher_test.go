package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldedge/internal/domain"
)

type recordingMetrics struct {
	mu       sync.Mutex
	dispatch []domain.DispatchMetric
}

func (r *recordingMetrics) ObserveDispatch(metric domain.DispatchMetric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatch = append(r.dispatch, metric)
}

func (r *recordingMetrics) ObserveUpstream(domain.UpstreamMetric) {}

type fixedExecutor struct {
	out json.RawMessage
	err error
}

func (f fixedExecutor) Execute(context.Context, string, json.RawMessage) (json.RawMessage, error) {
	return f.out, f.err
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return false }

func TestMetricDispatcher_RecordsOutcome(t *testing.T) {
	metrics := &recordingMetrics{}
	m := NewMetricDispatcher(fixedExecutor{out: json.RawMessage(`{"ok":true}`)}, metrics)

	res := m.Dispatch(context.Background(), "fieldedge_list_jobs", nil)
	require.False(t, res.IsError)
	assert.Equal(t, `{"ok":true}`, res.Text())

	require.Len(t, metrics.dispatch, 1)
	got := metrics.dispatch[0]
	assert.Equal(t, "fieldedge_list_jobs", got.Tool)
	assert.Equal(t, domain.DispatchStatusSuccess, got.Status)
	assert.Equal(t, domain.DispatchReasonSuccess, got.Reason)
}

func TestMetricDispatcher_NilMetrics(t *testing.T) {
	m := NewMetricDispatcher(fixedExecutor{err: domain.UnknownTool("x")}, nil)
	res := m.Dispatch(context.Background(), "x", nil)
	assert.True(t, res.IsError)
}

func TestClassifyDispatchResult(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		reason domain.DispatchReason
	}{
		{"success", nil, domain.DispatchReasonSuccess},
		{"invalid", domain.InvalidArgument("op", "bad"), domain.DispatchReasonInvalidArgument},
		{"missing", fmt.Errorf("wrapped: %w", domain.ErrMissingArgument), domain.DispatchReasonInvalidArgument},
		{"unknown", domain.UnknownTool("x"), domain.DispatchReasonUnknownTool},
		{"upstream", domain.UpstreamFailure("op", 500, "down", ""), domain.DispatchReasonUpstream},
		{"transport", domain.Transport("op", errors.New("refused")), domain.DispatchReasonTransport},
		{"deadline", domain.Transport("op", context.DeadlineExceeded), domain.DispatchReasonTimeout},
		{"net timeout", domain.Transport("op", timeoutErr{}), domain.DispatchReasonTimeout},
		{"internal", errors.New("boom"), domain.DispatchReasonInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, reason := classifyDispatchResult(tc.err)
			assert.Equal(t, tc.reason, reason)
			if tc.err == nil {
				assert.Equal(t, domain.DispatchStatusSuccess, status)
			} else {
				assert.Equal(t, domain.DispatchStatusError, status)
			}
		})
	}
}
