package mcpcodec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fieldedge/internal/domain"
)

// ToolToMCP converts a domain tool definition to its MCP wire form.
func ToolToMCP(tool domain.ToolDefinition) *mcp.Tool {
	wire := &mcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
	}
	if tool.InputSchema != nil {
		wire.InputSchema = tool.InputSchema
	} else {
		wire.InputSchema = &jsonschema.Schema{Type: "object"}
	}
	return wire
}

// ToolFromMCP converts an MCP tool back to a domain definition.
func ToolFromMCP(tool *mcp.Tool) (domain.ToolDefinition, error) {
	if tool == nil {
		return domain.ToolDefinition{}, nil
	}
	def := domain.ToolDefinition{
		Name:        tool.Name,
		Description: tool.Description,
	}
	if tool.InputSchema == nil {
		return def, nil
	}
	if schema, ok := tool.InputSchema.(*jsonschema.Schema); ok {
		def.InputSchema = schema
		return def, nil
	}
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return domain.ToolDefinition{}, fmt.Errorf("marshal input schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return domain.ToolDefinition{}, fmt.Errorf("decode input schema: %w", err)
	}
	def.InputSchema = &schema
	return def, nil
}

// ResourceToMCP converts a resource definition to its MCP wire form.
func ResourceToMCP(resource domain.ResourceDefinition) *mcp.Resource {
	return &mcp.Resource{
		URI:         resource.URI,
		Name:        resource.Name,
		Description: resource.Description,
		MIMEType:    resource.MIMEType,
	}
}

// ResultToMCP converts a dispatch envelope to an MCP tool result.
func ResultToMCP(result domain.ToolResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, block := range result.Content {
		content = append(content, &mcp.TextContent{Text: block.Text})
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}

// ResultFromMCP flattens an MCP tool result into a dispatch envelope. Non-text content is dropped.
func ResultFromMCP(result *mcp.CallToolResult) domain.ToolResult {
	if result == nil {
		return domain.ToolResult{}
	}
	out := domain.ToolResult{IsError: result.IsError}
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			out.Content = append(out.Content, domain.ContentBlock{Type: domain.ContentTypeText, Text: text.Text})
		}
	}
	return out
}

// MarshalToolDefinition encodes a tool definition as MCP JSON.
func MarshalToolDefinition(tool domain.ToolDefinition) ([]byte, error) {
	return json.Marshal(ToolToMCP(tool))
}

// MarshalResourceDefinition encodes a resource definition as MCP JSON.
func MarshalResourceDefinition(resource domain.ResourceDefinition) ([]byte, error) {
	return json.Marshal(ResourceToMCP(resource))
}

// HashToolDefinitions returns a deterministic hash for a tool list or an error.
func HashToolDefinitions(tools []domain.ToolDefinition) (string, error) {
	hasher := sha256.New()
	for i, tool := range tools {
		raw, err := MarshalToolDefinition(tool)
		if err != nil {
			return "", fmt.Errorf("marshal tool definition %d: %w", i, err)
		}
		_, _ = hasher.Write(raw)
		_, _ = hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashResourceDefinitions returns a deterministic hash for a resource list or an error.
func HashResourceDefinitions(resources []domain.ResourceDefinition) (string, error) {
	hasher := sha256.New()
	for i, resource := range resources {
		raw, err := MarshalResourceDefinition(resource)
		if err != nil {
			return "", fmt.Errorf("marshal resource definition %d: %w", i, err)
		}
		_, _ = hasher.Write(raw)
		_, _ = hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
