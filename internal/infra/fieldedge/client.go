package fieldedge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/telemetry"
)

const maxErrorBodyBytes = 64 * 1024

// Client performs one upstream call per request against the FieldEdge REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    domain.Metrics
	health     *telemetry.HealthTracker
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *zap.Logger
	metrics    domain.Metrics
	health     *telemetry.HealthTracker
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = client }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

func WithMetrics(metrics domain.Metrics) Option {
	return func(o *clientOptions) { o.metrics = metrics }
}

func WithHealth(health *telemetry.HealthTracker) Option {
	return func(o *clientOptions) { o.health = health }
}

// ResolveBaseURL picks the explicit base URL, falling back to the environment default.
func ResolveBaseURL(cfg domain.ClientConfig) string {
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Environment), domain.EnvironmentSandbox) {
		return domain.SandboxBaseURL
	}
	return domain.ProductionBaseURL
}

func NewClient(cfg domain.ClientConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	baseURL := ResolveBaseURL(cfg)
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	options := clientOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: wrapHTTPClient(options.httpClient, cfg),
		logger:     logger.Named("fieldedge"),
		metrics:    options.metrics,
		health:     options.health,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query domain.Query) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// Request performs a single upstream call and returns the decoded JSON body.
// An empty successful body yields {}; a non-JSON successful body is returned as a JSON string.
func (c *Client) Request(ctx context.Context, method, path string, body any, query domain.Query) (json.RawMessage, error) {
	raw, err := c.roundTrip(ctx, method, path, body, query, "")
	if err != nil {
		return nil, err
	}
	return normalizeBody(raw), nil
}

// Download fetches a binary payload such as an invoice PDF.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	return c.roundTrip(ctx, http.MethodGet, path, nil, nil, "*/*")
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, query domain.Query, accept string) ([]byte, error) {
	op := method + " " + path
	endpoint := c.baseURL + path
	if encoded := EncodeQuery(query); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, domain.E(domain.CodeInvalidArgument, op, "encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, domain.E(domain.CodeInternal, op, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	logger := telemetry.LoggerWithRequest(ctx, c.logger)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, 0, time.Since(start), err)
		logger.Warn("upstream request failed",
			telemetry.EventField(telemetry.EventUpstreamFailure),
			telemetry.MethodField(method),
			telemetry.PathField(path),
			zap.Error(err),
		)
		return nil, domain.Transport(op, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if readErr != nil {
		c.observe(method, resp.StatusCode, duration, readErr)
		return nil, domain.Transport(op, readErr)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		upstreamErr := domain.UpstreamFailure(op, resp.StatusCode, upstreamMessage(raw, resp.StatusCode), truncate(raw))
		c.observe(method, resp.StatusCode, duration, upstreamErr)
		logger.Warn("upstream returned error status",
			telemetry.EventField(telemetry.EventUpstreamFailure),
			telemetry.MethodField(method),
			telemetry.PathField(path),
			telemetry.StatusCodeField(resp.StatusCode),
			telemetry.DurationField(duration),
		)
		return nil, upstreamErr
	}

	c.observe(method, resp.StatusCode, duration, nil)
	logger.Debug("upstream request completed",
		telemetry.MethodField(method),
		telemetry.PathField(path),
		telemetry.StatusCodeField(resp.StatusCode),
		telemetry.DurationField(duration),
	)
	return raw, nil
}

func (c *Client) observe(method string, status int, duration time.Duration, err error) {
	if c.metrics != nil {
		c.metrics.ObserveUpstream(domain.UpstreamMetric{
			Method:     method,
			StatusCode: status,
			Duration:   duration,
		})
	}
	if c.health != nil {
		c.health.ObserveUpstream(status, err)
	}
}

func upstreamMessage(raw []byte, status int) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return http.StatusText(status)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return text
	}
	if obj, ok := decoded.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	compact := bytes.Buffer{}
	if err := json.Compact(&compact, raw); err != nil {
		return text
	}
	return compact.String()
}

func normalizeBody(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("{}")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	encoded, err := json.Marshal(string(raw))
	if err != nil {
		return json.RawMessage("{}")
	}
	return json.RawMessage(encoded)
}

func truncate(raw []byte) string {
	if len(raw) > maxErrorBodyBytes {
		return string(raw[:maxErrorBodyBytes])
	}
	return string(raw)
}

var _ domain.Upstream = (*Client)(nil)
