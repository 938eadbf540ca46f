package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolDefinition describes one callable tool: name, description and the shape of its arguments.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ContentType tags a content block payload.
type ContentType string

const (
	ContentTypeText ContentType = "text"
)

// ContentBlock is one entry of a tool result.
type ContentBlock struct {
	Type ContentType `json:"type"`
	Text string      `json:"text"`
}

// ToolResult is the envelope every dispatch returns.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// TextResult builds a single-block envelope.
func TextResult(text string, isError bool) ToolResult {
	return ToolResult{
		Content: []ContentBlock{{Type: ContentTypeText, Text: text}},
		IsError: isError,
	}
}

// Text joins the text payload of every block.
func (r ToolResult) Text() string {
	if len(r.Content) == 1 {
		return r.Content[0].Text
	}
	var out string
	for i, block := range r.Content {
		if i > 0 {
			out += "\n"
		}
		out += block.Text
	}
	return out
}

// ResourceDefinition describes a static dashboard resource.
type ResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ClientConfig is the upstream connection configuration.
type ClientConfig struct {
	APIKey          string
	BaseURL         string
	Environment     string
	CompanyID       string
	SubscriptionKey string
	Timeout         time.Duration
}

// QueryParam is one query string entry.
type QueryParam struct {
	Key   string
	Value any
}

// Query is an ordered set of query parameters. Entries with nil values are dropped on encode.
type Query []QueryParam

// Add appends a parameter and returns the query for chaining.
func (q Query) Add(key string, value any) Query {
	return append(q, QueryParam{Key: key, Value: value})
}

// Upstream performs requests against the FieldEdge REST API.
type Upstream interface {
	Request(ctx context.Context, method, path string, body any, query Query) (json.RawMessage, error)
	Download(ctx context.Context, path string) ([]byte, error)
}

// Dispatcher routes a named tool call to its handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, arguments json.RawMessage) ToolResult
}
