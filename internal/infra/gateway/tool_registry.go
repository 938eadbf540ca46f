package gateway

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/mcpcodec"
)

type toolRegistry struct {
	server     *mcp.Server
	handler    func(name string) mcp.ToolHandler
	logger     *zap.Logger
	registered map[string]struct{}
}

func newToolRegistry(server *mcp.Server, handler func(name string) mcp.ToolHandler, logger *zap.Logger) *toolRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &toolRegistry{
		server:     server,
		handler:    handler,
		logger:     logger.Named("tool_registry"),
		registered: make(map[string]struct{}),
	}
}

// Register adds every definition with an object input schema to the server.
func (r *toolRegistry) Register(defs []domain.ToolDefinition) {
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		if !isObjectSchema(def) {
			r.logger.Warn("skip tool with invalid input schema", zap.String("tool", def.Name))
			continue
		}
		if _, dup := r.registered[def.Name]; dup {
			r.logger.Warn("skip duplicate tool", zap.String("tool", def.Name))
			continue
		}
		r.server.AddTool(mcpcodec.ToolToMCP(def), r.handler(def.Name))
		r.registered[def.Name] = struct{}{}
	}
}

func (r *toolRegistry) Has(name string) bool {
	_, ok := r.registered[name]
	return ok
}

func (r *toolRegistry) Len() int {
	return len(r.registered)
}

func isObjectSchema(def domain.ToolDefinition) bool {
	return def.InputSchema != nil && def.InputSchema.Type == "object"
}
