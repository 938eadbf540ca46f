package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/hashutil"
	"fieldedge/internal/infra/mcpcodec"
	"fieldedge/internal/infra/telemetry"
)

type Options struct {
	// UIDir is the root of the prebuilt dashboard apps.
	UIDir  string
	Logger *zap.Logger
}

// Gateway exposes the tool catalogue and dashboard resources as an MCP server.
type Gateway struct {
	dispatcher domain.Dispatcher
	logger     *zap.Logger
	server     *mcp.Server
	tools      *toolRegistry
	resources  *resourceRegistry

	toolsETag     string
	resourcesETag string
}

func NewGateway(dispatcher domain.Dispatcher, tools []domain.ToolDefinition, opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	uiDir := opts.UIDir
	if uiDir == "" {
		uiDir = domain.DefaultUIDir
	}

	g := &Gateway{
		dispatcher: dispatcher,
		logger:     logger.Named("gateway"),
	}
	g.server = mcp.NewServer(&mcp.Implementation{
		Name:    domain.ServerName,
		Version: domain.ServerVersion,
	}, &mcp.ServerOptions{
		HasTools:     true,
		HasResources: true,
	})

	g.tools = newToolRegistry(g.server, g.toolHandler, g.logger)
	g.tools.Register(tools)
	g.server.AddReceivingMiddleware(g.unknownToolMiddleware())

	resources := DashboardResources()
	g.resources = newResourceRegistry(g.server, newAppLoader(uiDir), g.logger)
	g.resources.Register(resources)

	g.toolsETag = hashutil.ToolETag(g.logger, tools)
	g.resourcesETag = hashutil.ResourceETag(g.logger, resources)
	return g
}

// ETags identifies the registered tool and resource catalogues.
func (g *Gateway) ETags() (tools, resources string) {
	return g.toolsETag, g.resourcesETag
}

// Server returns the underlying MCP server, mainly for in-process transports.
func (g *Gateway) Server() *mcp.Server {
	return g.server
}

// Run serves the protocol over stdin/stdout until ctx is canceled or the peer disconnects.
func (g *Gateway) Run(ctx context.Context) error {
	g.logger.Info("gateway starting",
		telemetry.EventField(telemetry.EventServerStart),
		telemetry.TransportField("stdio"),
		zap.Int("tools", g.tools.Len()),
		zap.String("tools_etag", g.toolsETag),
		zap.String("resources_etag", g.resourcesETag),
	)
	err := g.server.Run(ctx, &mcp.StdioTransport{})
	g.logger.Info("gateway stopped", telemetry.EventField(telemetry.EventServerStop))
	return err
}

func (g *Gateway) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		if id := headerRequestID(req); id != "" {
			ctx, _ = telemetry.EnsureRequestMeta(ctx, id, name)
		}
		result := g.dispatcher.Dispatch(ctx, name, args)
		return mcpcodec.ResultToMCP(result), nil
	}
}

// unknownToolMiddleware answers tools/call for unregistered names with method-not-found.
func (g *Gateway) unknownToolMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil || g.tools.Has(call.Params.Name) {
				return next(ctx, method, req)
			}
			g.logger.Warn("unknown tool",
				telemetry.EventField(telemetry.EventDispatchFailure),
				telemetry.ToolField(call.Params.Name),
			)
			return nil, &jsonrpc.Error{
				Code:    jsonrpc.CodeMethodNotFound,
				Message: fmt.Sprintf("Unknown tool: %s", call.Params.Name),
			}
		}
	}
}

// headerRequestID returns the x-request-id header of an HTTP-borne call.
func headerRequestID(req *mcp.CallToolRequest) string {
	if req == nil || req.Extra == nil || req.Extra.Header == nil {
		return ""
	}
	return strings.TrimSpace(req.Extra.Header.Get(telemetry.RequestIDHeader))
}
