package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/fieldedge"
	"fieldedge/internal/infra/telemetry"
	"fieldedge/internal/infra/tools"
)

type stubUpstream struct {
	mu      sync.Mutex
	paths   []string
	respond func(method, path string) (json.RawMessage, error)
}

func (s *stubUpstream) Request(_ context.Context, method, path string, _ any, _ domain.Query) (json.RawMessage, error) {
	s.mu.Lock()
	s.paths = append(s.paths, method+" "+path)
	s.mu.Unlock()
	if s.respond != nil {
		return s.respond(method, path)
	}
	return json.RawMessage(`{"id":"1","customerId":"C1"}`), nil
}

func (s *stubUpstream) Download(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	s.paths = append(s.paths, "DOWNLOAD "+path)
	s.mu.Unlock()
	return []byte("%PDF"), nil
}

func (s *stubUpstream) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func newDispatcher(t *testing.T, api domain.Upstream) *Dispatcher {
	t.Helper()
	reg, err := tools.NewDefaultRegistry()
	require.NoError(t, err)
	return New(reg, api, Options{})
}

func TestDispatch_UnknownTool(t *testing.T) {
	api := &stubUpstream{}
	d := newDispatcher(t, api)

	for _, args := range []string{"", "{}", "null", `{"id":"1"}`, "not json"} {
		res := d.Dispatch(context.Background(), "fieldedge_nonexistent", json.RawMessage(args))
		require.True(t, res.IsError, args)
		require.Len(t, res.Content, 1)
		assert.Equal(t, domain.ContentTypeText, res.Content[0].Type)
		assert.Contains(t, res.Text(), "fieldedge_nonexistent")
	}
	assert.Empty(t, api.Calls())
}

func TestDispatch_SuccessIsPrettyJSON(t *testing.T) {
	api := &stubUpstream{respond: func(string, string) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"C1","tags":["a"]}`), nil
	}}
	d := newDispatcher(t, api)

	res := d.Dispatch(context.Background(), "fieldedge_get_customer", json.RawMessage(`{"id":"C1"}`))
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "{\n  \"id\": \"C1\",\n  \"tags\": [\n    \"a\"\n  ]\n}", res.Text())
	assert.Equal(t, []string{"GET /customers/C1"}, api.Calls())
}

func TestDispatch_EveryToolSucceedsWithRequiredArgs(t *testing.T) {
	reg, err := tools.NewDefaultRegistry()
	require.NoError(t, err)
	api := &stubUpstream{}
	d := New(reg, api, Options{})

	for _, def := range reg.Definitions() {
		args := map[string]any{}
		for _, field := range def.InputSchema.Required {
			args[field] = "x"
		}
		raw, err := json.Marshal(args)
		require.NoError(t, err)

		res := d.Dispatch(context.Background(), def.Name, raw)
		require.False(t, res.IsError, "%s: %s", def.Name, res.Text())
		assert.True(t, json.Valid([]byte(res.Text())), def.Name)
	}
}

func TestDispatch_MissingRequiredArgument(t *testing.T) {
	api := &stubUpstream{}
	d := newDispatcher(t, api)

	res := d.Dispatch(context.Background(), "fieldedge_get_invoice", json.RawMessage(`{}`))
	require.True(t, res.IsError)
	assert.Equal(t, "Error: id is required", res.Text())

	res = d.Dispatch(context.Background(), "fieldedge_get_invoice", json.RawMessage(`{"id":null}`))
	require.True(t, res.IsError)

	res = d.Dispatch(context.Background(), "fieldedge_create_customer", json.RawMessage(`{"firstName":"John"}`))
	require.True(t, res.IsError)
	assert.Equal(t, "Error: missing required arguments: lastName, customerType", res.Text())

	assert.Empty(t, api.Calls())
}

func TestDispatch_EnumsAreNotEnforced(t *testing.T) {
	api := &stubUpstream{}
	d := newDispatcher(t, api)

	res := d.Dispatch(context.Background(), "fieldedge_list_jobs", json.RawMessage(`{"status":"made-up"}`))
	assert.False(t, res.IsError, res.Text())
}

func TestDispatch_MalformedArguments(t *testing.T) {
	api := &stubUpstream{}
	d := newDispatcher(t, api)

	res := d.Dispatch(context.Background(), "fieldedge_list_jobs", json.RawMessage(`[1,2]`))
	require.True(t, res.IsError)
	assert.Contains(t, res.Text(), "arguments must be a JSON object")
	assert.Empty(t, api.Calls())
}

func TestDispatch_RecoversHandlerPanic(t *testing.T) {
	reg, err := tools.NewRegistry(tools.Group{
		Name: "broken",
		Definitions: []domain.ToolDefinition{{
			Name:        "fieldedge_explode",
			Description: "panics",
			InputSchema: &jsonschema.Schema{Type: "object"},
		}},
		Handlers: map[string]tools.Handler{
			"fieldedge_explode": func(context.Context, tools.Env, tools.Call) (any, error) {
				panic("boom")
			},
		},
	})
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	d := New(reg, &stubUpstream{}, Options{Logger: zap.New(core)})

	res := d.Dispatch(context.Background(), "fieldedge_explode", nil)
	require.True(t, res.IsError)
	assert.Contains(t, res.Text(), "boom")
	assert.Equal(t, 1, logs.FilterMessage("tool handler panicked").Len())
}

func TestDispatch_LogsFailureWithRequestFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	reg, err := tools.NewDefaultRegistry()
	require.NoError(t, err)
	d := New(reg, &stubUpstream{}, Options{Logger: zap.New(core)})

	ctx := telemetry.WithRequestMeta(context.Background(), telemetry.RequestMeta{RequestID: "req-7"})
	d.Dispatch(ctx, "fieldedge_nonexistent", nil)

	entries := logs.FilterMessage("tool dispatch failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields[telemetry.FieldRequestID])
	assert.Equal(t, "fieldedge_nonexistent", fields[telemetry.FieldTool])
	assert.Equal(t, string(domain.CodeUnknownTool), fields["code"])
	assert.Equal(t, telemetry.EventDispatchFailure, fields[telemetry.FieldEvent])
}

func TestDispatch_Upstream404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/missing", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	client, err := fieldedge.NewClient(domain.ClientConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	d := newDispatcher(t, client)

	res := d.Dispatch(context.Background(), "fieldedge_get_invoice", json.RawMessage(`{"id":"missing"}`))
	require.True(t, res.IsError)
	assert.Contains(t, res.Text(), "not found")
	assert.Equal(t, "Error: FieldEdge API Error (404): not found", res.Text())
}

func TestDispatch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := fieldedge.NewClient(domain.ClientConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)
	d := newDispatcher(t, client)

	out, err := d.Execute(context.Background(), "fieldedge_list_jobs", nil)
	require.Error(t, err)
	assert.Nil(t, out)
	code, _ := domain.CodeFrom(err)
	assert.Equal(t, domain.CodeTransport, code)
}

func TestDispatch_ComposedPartialFailureIsSingleEnvelope(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/equipment/EQ1":
			_, _ = w.Write([]byte(`{"id":"EQ1","customerId":"C1"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/jobs":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"calendar conflict"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	client, err := fieldedge.NewClient(domain.ClientConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	d := newDispatcher(t, client)

	res := d.Dispatch(context.Background(), "fieldedge_schedule_equipment_maintenance",
		json.RawMessage(`{"equipmentId":"EQ1","scheduledDate":"2026-05-01","maintenanceType":"filter change"}`))
	require.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Contains(t, res.Text(), "calendar conflict")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"GET /equipment/EQ1", "POST /jobs"}, seen)
}

func TestDispatch_StartJobStampWithinCallWindow(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs/J1/start", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":"J1","status":"in-progress"}`))
	}))
	defer srv.Close()

	client, err := fieldedge.NewClient(domain.ClientConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)
	d := newDispatcher(t, client)

	before := time.Now().UTC().Truncate(time.Millisecond)
	res := d.Dispatch(context.Background(), "fieldedge_start_job", json.RawMessage(`{"id":"J1"}`))
	after := time.Now().UTC()
	require.False(t, res.IsError, res.Text())

	stamp, err := time.Parse(time.RFC3339Nano, body["actualStart"].(string))
	require.NoError(t, err)
	assert.False(t, stamp.Before(before))
	assert.False(t, stamp.After(after))
}

func TestDispatch_GetIsIdempotent(t *testing.T) {
	api := &stubUpstream{respond: func(string, string) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"T1","name":"Ana"}`), nil
	}}
	d := newDispatcher(t, api)

	first := d.Dispatch(context.Background(), "fieldedge_get_technician", json.RawMessage(`{"id":"T1"}`))
	second := d.Dispatch(context.Background(), "fieldedge_get_technician", json.RawMessage(`{"id":"T1"}`))
	assert.Equal(t, first, second)
}

func TestEnvelope(t *testing.T) {
	ok := Envelope(json.RawMessage(`{}`), nil)
	assert.False(t, ok.IsError)
	assert.Equal(t, "{}", ok.Text())

	failed := Envelope(nil, domain.InvalidArgument("op", "bad input"))
	assert.True(t, failed.IsError)
	assert.True(t, strings.HasPrefix(failed.Text(), "Error: "))
}

func TestRender(t *testing.T) {
	out, err := render(json.RawMessage(""))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	out, err = render(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}
