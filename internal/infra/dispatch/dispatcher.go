package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/telemetry"
	"fieldedge/internal/infra/tools"
)

// Executor runs a tool and returns its pretty-printed result.
type Executor interface {
	Execute(ctx context.Context, name string, arguments json.RawMessage) (json.RawMessage, error)
}

type Dispatcher struct {
	registry *tools.Registry
	env      tools.Env
	logger   *zap.Logger
}

type Options struct {
	Logger *zap.Logger
	// Now overrides the clock used for dispatcher-stamped timestamps.
	Now func() time.Time
}

func New(registry *tools.Registry, api domain.Upstream, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		registry: registry,
		env:      tools.Env{API: api, Now: opts.Now},
		logger:   logger.Named("dispatch"),
	}
}

// Dispatch never fails: every outcome, including an unknown tool name, is rendered
// into the returned envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, arguments json.RawMessage) domain.ToolResult {
	return Envelope(d.Execute(ctx, name, arguments))
}

func (d *Dispatcher) Execute(ctx context.Context, name string, arguments json.RawMessage) (json.RawMessage, error) {
	ctx, _ = telemetry.EnsureRequestMeta(ctx, "", name)
	logger := telemetry.LoggerWithRequest(ctx, d.logger)
	start := time.Now()

	out, err := d.execute(ctx, logger, name, arguments)
	if err != nil {
		logger.Warn("tool dispatch failed",
			telemetry.EventField(telemetry.EventDispatchFailure),
			telemetry.DurationField(time.Since(start)),
			zap.String("code", string(codeOf(err))),
			zap.Error(err),
		)
		return nil, err
	}
	logger.Debug("tool dispatch succeeded",
		telemetry.EventField(telemetry.EventDispatchSuccess),
		telemetry.DurationField(time.Since(start)),
	)
	return out, nil
}

func (d *Dispatcher) execute(ctx context.Context, logger *zap.Logger, name string, arguments json.RawMessage) (json.RawMessage, error) {
	handler, ok := d.registry.Lookup(name)
	if !ok {
		return nil, domain.UnknownTool(name)
	}

	args, err := tools.ParseArgs(arguments)
	if err != nil {
		return nil, domain.E(domain.CodeInvalidArgument, name, err.Error(), err)
	}
	if def, ok := d.registry.Definition(name); ok && def.InputSchema != nil {
		if err := checkRequired(name, args, def.InputSchema.Required); err != nil {
			return nil, err
		}
	}

	value, err := d.invoke(ctx, logger, handler, tools.Call{Tool: name, Args: args})
	if err != nil {
		return nil, domain.Wrap(domain.CodeInternal, name, err)
	}

	out, err := render(value)
	if err != nil {
		return nil, domain.E(domain.CodeInternal, name, "encode result", err)
	}
	return out, nil
}

func (d *Dispatcher) invoke(ctx context.Context, logger *zap.Logger, handler tools.Handler, call tools.Call) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool handler panicked",
				telemetry.EventField(telemetry.EventDispatchPanic),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			value = nil
			err = domain.E(domain.CodeInternal, call.Tool, fmt.Sprintf("internal error: %v", r), nil)
		}
	}()
	return handler(ctx, d.env, call)
}

func checkRequired(name string, args tools.Args, required []string) error {
	missing := args.Missing(required)
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return domain.MissingArgument(name, missing[0])
	default:
		return domain.E(domain.CodeInvalidArgument, name,
			"missing required arguments: "+strings.Join(missing, ", "), domain.ErrMissingArgument)
	}
}

// render pretty prints a handler result with two-space indentation.
func render(value any) (json.RawMessage, error) {
	if raw, ok := value.(json.RawMessage); ok {
		if len(bytes.TrimSpace(raw)) == 0 {
			return json.RawMessage("{}"), nil
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.MarshalIndent(value, "", "  ")
}

// Envelope converts an execution outcome into the protocol result envelope.
func Envelope(payload json.RawMessage, err error) domain.ToolResult {
	if err != nil {
		return domain.TextResult(domain.ErrorText(err), true)
	}
	return domain.TextResult(string(payload), false)
}

func codeOf(err error) domain.ErrorCode {
	code, ok := domain.CodeFrom(err)
	if !ok {
		return domain.CodeInternal
	}
	return code
}

var (
	_ domain.Dispatcher = (*Dispatcher)(nil)
	_ Executor          = (*Dispatcher)(nil)
)
