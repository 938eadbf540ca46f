package domain

import "time"

// DispatchStatus labels the outcome of a tool dispatch.
type DispatchStatus string

const (
	// DispatchStatusSuccess indicates the envelope carried a result.
	DispatchStatusSuccess DispatchStatus = "success"
	// DispatchStatusError indicates the envelope carried an error.
	DispatchStatusError DispatchStatus = "error"
)

// DispatchReason describes why a dispatch ended with a status.
type DispatchReason string

const (
	// DispatchReasonSuccess indicates the dispatch succeeded.
	DispatchReasonSuccess DispatchReason = "success"
	// DispatchReasonInvalidArgument indicates argument validation failed.
	DispatchReasonInvalidArgument DispatchReason = "invalid_argument"
	// DispatchReasonUnknownTool indicates the tool name was not registered.
	DispatchReasonUnknownTool DispatchReason = "unknown_tool"
	// DispatchReasonUpstream indicates the upstream answered with a failure status.
	DispatchReasonUpstream DispatchReason = "upstream"
	// DispatchReasonTransport indicates the upstream could not be reached.
	DispatchReasonTransport DispatchReason = "transport"
	// DispatchReasonTimeout indicates the upstream call exceeded its deadline.
	DispatchReasonTimeout DispatchReason = "timeout"
	// DispatchReasonInternal indicates a handler fault.
	DispatchReasonInternal DispatchReason = "internal"
)

// DispatchMetric captures metrics for one tool dispatch.
type DispatchMetric struct {
	Tool     string
	Status   DispatchStatus
	Reason   DispatchReason
	Duration time.Duration
}

// UpstreamMetric captures metrics for one upstream HTTP call.
// StatusCode is zero when no response was received.
type UpstreamMetric struct {
	Method     string
	StatusCode int
	Duration   time.Duration
}

// Metrics records adapter metrics.
type Metrics interface {
	ObserveDispatch(metric DispatchMetric)
	ObserveUpstream(metric UpstreamMetric)
}
