package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldTool       = "tool"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDurationMs = "duration_ms"
	FieldTransport  = "transport"
	FieldLogSource  = "log_source"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
)

const (
	EventDispatchSuccess = "dispatch_success"
	EventDispatchFailure = "dispatch_failure"
	EventDispatchPanic   = "dispatch_panic"
	EventUpstreamFailure = "upstream_failure"
	EventResourceFailure = "resource_failure"
	EventServerStart     = "server_start"
	EventServerStop      = "server_stop"
)

const (
	LogSourceCore = "core"
	LogSourceCLI  = "cli"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ToolField(name string) zap.Field {
	return zap.String(FieldTool, name)
}

func MethodField(method string) zap.Field {
	return zap.String(FieldMethod, method)
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func StatusCodeField(status int) zap.Field {
	return zap.Int(FieldStatusCode, status)
}

func TransportField(transport string) zap.Field {
	return zap.String(FieldTransport, transport)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}
