package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"fieldedge/internal/domain"
)

type upstreamCall struct {
	Method string
	Path   string
	Body   map[string]any
	Query  domain.Query
}

type fakeUpstream struct {
	mu       sync.Mutex
	calls    []upstreamCall
	respond  func(call upstreamCall) (json.RawMessage, error)
	download []byte
}

func (f *fakeUpstream) Request(_ context.Context, method, path string, body any, query domain.Query) (json.RawMessage, error) {
	call := upstreamCall{Method: method, Path: path, Query: query}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		obj, _ := decodeObject(raw)
		call.Body = obj
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(call)
	}
	return json.RawMessage(`{"ok":true}`), nil
}

func (f *fakeUpstream) Download(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, upstreamCall{Method: "DOWNLOAD", Path: path})
	f.mu.Unlock()
	return f.download, nil
}

func (f *fakeUpstream) Calls() []upstreamCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upstreamCall(nil), f.calls...)
}

func queryKeys(q domain.Query) []string {
	var keys []string
	for _, p := range q {
		keys = append(keys, p.Key)
	}
	return keys
}

func assertCode(t *testing.T, want domain.ErrorCode, err error) {
	t.Helper()
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok, "error %v carries no code", err)
	require.Equal(t, want, code)
}
