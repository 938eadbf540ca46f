package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/mcpcodec"
)

// Loopback is an MCP client session connected to the gateway in process.
// Calls made through it take the same path as calls from a remote client.
type Loopback struct {
	session *mcp.ClientSession
}

func (g *Gateway) Connect(ctx context.Context) (*Loopback, error) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	if _, err := g.server.Connect(ctx, serverTransport, nil); err != nil {
		return nil, fmt.Errorf("connect server: %w", err)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: domain.ServerName + "-loopback", Version: domain.ServerVersion}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect client: %w", err)
	}
	return &Loopback{session: session}, nil
}

func (l *Loopback) Close() error {
	return l.session.Close()
}

// CallTool runs tools/call and flattens the result into a dispatch envelope.
// Protocol-level rejections, such as an unknown tool, are returned as errors.
func (l *Loopback) CallTool(ctx context.Context, name string, arguments json.RawMessage) (domain.ToolResult, error) {
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}
	res, err := l.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: arguments})
	if err != nil {
		return domain.ToolResult{}, err
	}
	return mcpcodec.ResultFromMCP(res), nil
}

// ListTools returns the catalogue as a client decodes it, following every page.
func (l *Loopback) ListTools(ctx context.Context) ([]domain.ToolDefinition, error) {
	var (
		out    []domain.ToolDefinition
		cursor string
	)
	for {
		res, err := l.session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, err
		}
		for _, tool := range res.Tools {
			def, err := mcpcodec.ToolFromMCP(tool)
			if err != nil {
				return nil, fmt.Errorf("decode tool %q: %w", tool.Name, err)
			}
			out = append(out, def)
		}
		if res.NextCursor == "" {
			return out, nil
		}
		cursor = res.NextCursor
	}
}
