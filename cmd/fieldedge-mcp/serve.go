package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fieldedge/internal/app"
	"fieldedge/internal/domain"
	"fieldedge/internal/infra/gateway"
)

type serveOptions struct {
	uiDir             string
	transport         string
	httpAddr          string
	httpPath          string
	httpToken         string
	httpJSONResponse  bool
	metrics           bool
	healthz           bool
	observabilityAddr string
}

func newServeCmd(root *cliOptions) *cobra.Command {
	opts := serveOptions{
		transport: app.TransportStdio,
		httpAddr:  domain.DefaultHTTPListenAddress,
		httpPath:  domain.DefaultHTTPPath,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalogue over stdio or streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildServeConfig(cmd.Flags(), root.configPath, opts)
			if err != nil {
				return err
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, cfg, app.LoggingConfig{Logger: root.logger})
			if err != nil {
				return err
			}
			if err := application.Run(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.uiDir, "ui-dir", "", "root directory of the prebuilt dashboard apps")
	flags.StringVar(&opts.transport, "transport", opts.transport, "protocol transport (stdio or streamable-http)")
	flags.StringVar(&opts.httpAddr, "http-addr", opts.httpAddr, "streamable HTTP listen address")
	flags.StringVar(&opts.httpPath, "http-path", opts.httpPath, "streamable HTTP endpoint path")
	flags.StringVar(&opts.httpToken, "http-token", "", "streamable HTTP bearer token (required for non-localhost)")
	flags.BoolVar(&opts.httpJSONResponse, "http-json-response", false, "use application/json responses instead of SSE")
	flags.BoolVar(&opts.metrics, "metrics", false, "serve /metrics on the observability address")
	flags.BoolVar(&opts.healthz, "healthz", false, "serve /healthz on the observability address")
	flags.StringVar(&opts.observabilityAddr, "observability-addr", "", "observability listen address")
	return cmd
}

// buildServeConfig turns flags into a ServeConfig. Observability switches only
// override the loaded configuration when given explicitly.
func buildServeConfig(flags *pflag.FlagSet, configPath string, opts serveOptions) (app.ServeConfig, error) {
	cfg := app.ServeConfig{
		ConfigPath: configPath,
		UIDir:      opts.uiDir,
		Transport:  opts.transport,
		HTTP: gateway.HTTPOptions{
			Addr:         opts.httpAddr,
			Path:         opts.httpPath,
			Token:        opts.httpToken,
			JSONResponse: opts.httpJSONResponse,
		},
	}

	switch opts.transport {
	case app.TransportStdio:
	case app.TransportStreamableHTTP:
		if err := gateway.ValidateHTTPOptions(cfg.HTTP); err != nil {
			return app.ServeConfig{}, err
		}
	default:
		return app.ServeConfig{}, fmt.Errorf("unsupported transport: %s", opts.transport)
	}

	var obs app.ObservabilityOptions
	changed := false
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "metrics":
			enabled, _ := flags.GetBool("metrics")
			obs.MetricsEnabled = &enabled
			changed = true
		case "healthz":
			enabled, _ := flags.GetBool("healthz")
			obs.HealthzEnabled = &enabled
			changed = true
		case "observability-addr":
			obs.ListenAddress, _ = flags.GetString("observability-addr")
			changed = true
		}
	})
	if changed {
		cfg.Observability = &obs
	}
	return cfg, nil
}
