package domain

import "time"

const (
	ServerName    = "fieldedge-mcp-server"
	ServerVersion = "1.0.0"
	ToolPrefix    = "fieldedge_"
)

const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"

	ProductionBaseURL = "https://api.fieldedge.com/v1"
	SandboxBaseURL    = "https://sandbox-api.fieldedge.com/v1"
)

const (
	// DefaultTimeout bounds each upstream call.
	DefaultTimeout = 30 * time.Second
	// DefaultUIDir holds the prebuilt dashboard bundles.
	DefaultUIDir = "dist/ui"
	// DefaultObservabilityListenAddress serves /metrics and /healthz.
	DefaultObservabilityListenAddress = "127.0.0.1:9090"
	// DefaultHTTPListenAddress serves the streamable HTTP transport.
	DefaultHTTPListenAddress = "127.0.0.1:8090"
	DefaultHTTPPath          = "/mcp"
	// DefaultMockListenAddress serves the in-memory upstream fake.
	DefaultMockListenAddress = "127.0.0.1:8787"
)

const (
	ResourceURIPrefix = "fieldedge://app/"
	ResourceMIMEType  = "text/html"
)

const (
	HeaderSubscriptionKey = "Ocp-Apim-Subscription-Key"
	HeaderCompanyID       = "X-Company-Id"
)
