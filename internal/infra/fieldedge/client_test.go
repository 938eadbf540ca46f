package fieldedge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/telemetry"
)

type capturedRequest struct {
	method  string
	path    string
	query   string
	headers http.Header
	body    []byte
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.headers = r.Header.Clone()
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, srv *httptest.Server, cfg domain.ClientConfig, opts ...Option) *Client {
	t.Helper()
	if cfg.APIKey == "" {
		cfg.APIKey = "secret-key"
	}
	cfg.BaseURL = srv.URL
	client, err := NewClient(cfg, append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(domain.ClientConfig{})
	require.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	_, err := NewClient(domain.ClientConfig{APIKey: "k", BaseURL: "not a url"})
	require.Error(t, err)
}

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, domain.ProductionBaseURL, ResolveBaseURL(domain.ClientConfig{}))
	assert.Equal(t, domain.SandboxBaseURL, ResolveBaseURL(domain.ClientConfig{Environment: "sandbox"}))
	assert.Equal(t, "https://custom.example/v2", ResolveBaseURL(domain.ClientConfig{BaseURL: "https://custom.example/v2/", Environment: "sandbox"}))
}

func TestRequest_GetSendsHeadersAndQuery(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"data":[],"totalCount":0}`)
	client := newTestClient(t, srv, domain.ClientConfig{CompanyID: "acme"})

	query := domain.Query{}.
		Add("status", "active").
		Add("page", json.Number("2")).
		Add("customerId", nil).
		Add("tags", []any{"vip", "hvac"})
	raw, err := client.Get(context.Background(), "/customers", query)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":[],"totalCount":0}`, string(raw))

	assert.Equal(t, http.MethodGet, captured.method)
	assert.Equal(t, "/customers", captured.path)
	assert.Equal(t, "status=active&page=2&tags=vip%2Chvac", captured.query)
	assert.Equal(t, "Bearer secret-key", captured.headers.Get("Authorization"))
	assert.Equal(t, "application/json", captured.headers.Get("Accept"))
	assert.Equal(t, "acme", captured.headers.Get(domain.HeaderCompanyID))
	assert.Empty(t, captured.headers.Get("Content-Type"))
	assert.Empty(t, captured.headers.Get(domain.HeaderSubscriptionKey))
	assert.Empty(t, captured.body)
}

func TestRequest_PostSendsJSONBody(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusCreated, `{"id":"c1"}`)
	client := newTestClient(t, srv, domain.ClientConfig{SubscriptionKey: "sub"})

	raw, err := client.Post(context.Background(), "/customers", map[string]any{"firstName": "John"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"c1"}`, string(raw))

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "application/json", captured.headers.Get("Content-Type"))
	assert.Equal(t, "sub", captured.headers.Get(domain.HeaderSubscriptionKey))
	assert.JSONEq(t, `{"firstName":"John"}`, string(captured.body))
}

func TestRequest_EmptySuccessBodyYieldsEmptyObject(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusNoContent, "")
	client := newTestClient(t, srv, domain.ClientConfig{})

	raw, err := client.Delete(context.Background(), "/customers/c1")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
	assert.Equal(t, http.MethodDelete, captured.method)
}

func TestRequest_NonJSONSuccessBodyIsWrapped(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "accepted")
	client := newTestClient(t, srv, domain.ClientConfig{})

	raw, err := client.Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, `"accepted"`, string(raw))
}

func TestRequest_UpstreamErrorUsesMessageField(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"message":"not found","code":"E404"}`)
	client := newTestClient(t, srv, domain.ClientConfig{})

	_, err := client.Get(context.Background(), "/invoices/missing", nil)
	require.Error(t, err)

	var upstream *domain.Error
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, domain.CodeUpstream, upstream.Code)
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.Equal(t, "not found", upstream.Message)
	assert.JSONEq(t, `{"message":"not found","code":"E404"}`, upstream.RawBody)
	assert.Equal(t, "Error: FieldEdge API Error (404): not found", domain.ErrorText(err))
}

func TestRequest_UpstreamErrorFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "object without message", body: `{"error": "bad"}`, want: `{"error":"bad"}`},
		{name: "plain text", body: "gateway exploded", want: "gateway exploded"},
		{name: "empty", body: "", want: "Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusBadGateway, tc.body)
			client := newTestClient(t, srv, domain.ClientConfig{})

			_, err := client.Get(context.Background(), "/jobs", nil)
			var upstream *domain.Error
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tc.want, upstream.Message)
		})
	}
}

func TestRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(domain.ClientConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/jobs", nil)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeTransport, code)
}

func TestRequest_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewClient(domain.ClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/slow", nil)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeTransport, code)
}

func TestDownload_ReturnsRawBytes(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, "%PDF-1.4 fake")
	client := newTestClient(t, srv, domain.ClientConfig{})

	data, err := client.Download(context.Background(), "/invoices/i1/pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Equal(t, "/invoices/i1/pdf", captured.path)
	assert.Equal(t, "*/*", captured.headers.Get("Accept"))
	assert.Equal(t, "Bearer secret-key", captured.headers.Get("Authorization"))
}

type recordingMetrics struct {
	upstream []domain.UpstreamMetric
}

func (r *recordingMetrics) ObserveDispatch(domain.DispatchMetric) {}

func (r *recordingMetrics) ObserveUpstream(metric domain.UpstreamMetric) {
	r.upstream = append(r.upstream, metric)
}

func TestRequest_ObservesMetricsAndHealth(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusServiceUnavailable, `{"message":"maintenance"}`)
	metrics := &recordingMetrics{}
	health := telemetry.NewHealthTracker()
	client := newTestClient(t, srv, domain.ClientConfig{}, WithMetrics(metrics), WithHealth(health))

	_, err := client.Patch(context.Background(), "/jobs/j1", map[string]any{"priority": "high"})
	require.Error(t, err)

	require.Len(t, metrics.upstream, 1)
	assert.Equal(t, http.MethodPatch, metrics.upstream[0].Method)
	assert.Equal(t, http.StatusServiceUnavailable, metrics.upstream[0].StatusCode)
	assert.Equal(t, 1, health.Report().Upstream.ConsecutiveFailures)
}
