package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/config"
	"fieldedge/internal/infra/dispatch"
	"fieldedge/internal/infra/gateway"
	"fieldedge/internal/infra/telemetry"
	"fieldedge/internal/infra/tools"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// ObservabilityOptions overrides the configured observability switches.
type ObservabilityOptions struct {
	MetricsEnabled *bool
	HealthzEnabled *bool
	ListenAddress  string
}

type ServeConfig struct {
	ConfigPath    string
	UIDir         string
	Transport     string
	HTTP          gateway.HTTPOptions
	Observability *ObservabilityOptions
}

// Application wires the core runtime and dependencies.
type Application struct {
	ctx        context.Context
	configPath string
	transport  string
	http       gateway.HTTPOptions

	logger     *zap.Logger
	registry   *prometheus.Registry
	health     *telemetry.HealthTracker
	config     config.Config
	tools      *tools.Registry
	dispatcher *dispatch.MetricDispatcher
	gateway    *gateway.Gateway
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context     context.Context
	ServeConfig ServeConfig
	Logger      *zap.Logger
	Registry    *prometheus.Registry
	Health      *telemetry.HealthTracker
	Config      config.Config
	Tools       *tools.Registry
	Dispatcher  *dispatch.MetricDispatcher
	Gateway     *gateway.Gateway
}

// NewApplication constructs the core application runtime.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	transport := opts.ServeConfig.Transport
	if transport == "" {
		transport = TransportStdio
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		ctx:        ctx,
		configPath: opts.ServeConfig.ConfigPath,
		transport:  transport,
		http:       opts.ServeConfig.HTTP,
		logger:     logger,
		registry:   opts.Registry,
		health:     opts.Health,
		config:     opts.Config,
		tools:      opts.Tools,
		dispatcher: opts.Dispatcher,
		gateway:    opts.Gateway,
	}
}

// Run serves the configured transport and the observability endpoints until ctx ends.
func (a *Application) Run() error {
	a.logger.Info("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("environment", a.config.Client.Environment),
		zap.Int("tools", a.tools.Len()),
		zap.String("transport", a.transport),
	)

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)

	obs := a.config.Observability
	if obs.Enabled() {
		group.Go(func() error {
			return telemetry.StartHTTPServer(groupCtx, telemetry.HTTPServerOptions{
				Addr:          obs.ListenAddress,
				EnableMetrics: obs.MetricsEnabled,
				EnableHealthz: obs.HealthzEnabled,
				Health:        a.health,
				Registry:      a.registry,
			}, a.logger)
		})
	}

	group.Go(func() error {
		// The observability server stops with the protocol transport.
		defer cancel()
		switch a.transport {
		case TransportStdio:
			return a.gateway.Run(groupCtx)
		case TransportStreamableHTTP:
			return a.gateway.RunStreamableHTTP(groupCtx, a.http)
		default:
			return fmt.Errorf("unsupported transport %q", a.transport)
		}
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Dispatch runs one tool call outside any protocol session.
func (a *Application) Dispatch(ctx context.Context, name string, arguments json.RawMessage) domain.ToolResult {
	return a.dispatcher.Dispatch(ctx, name, arguments)
}

// Call runs one tool through an in-process MCP session.
func (a *Application) Call(ctx context.Context, name string, arguments json.RawMessage) (domain.ToolResult, error) {
	loop, err := a.gateway.Connect(ctx)
	if err != nil {
		return domain.ToolResult{}, err
	}
	defer loop.Close()
	return loop.CallTool(ctx, name, arguments)
}

// ServedTools lists the tools the protocol server advertises.
func (a *Application) ServedTools(ctx context.Context) ([]domain.ToolDefinition, error) {
	loop, err := a.gateway.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer loop.Close()
	return loop.ListTools(ctx)
}

func (a *Application) Tools() *tools.Registry {
	return a.tools
}

func (a *Application) Config() config.Config {
	return a.config
}
