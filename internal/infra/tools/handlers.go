package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fieldedge/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Env carries the collaborators a handler may use.
type Env struct {
	API domain.Upstream
	Now func() time.Time
}

// Timestamp renders the current time in UTC with millisecond precision.
func (e Env) Timestamp() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().UTC().Format(timestampLayout)
}

// Call is one tool invocation as seen by a handler.
type Call struct {
	Tool string
	Args Args
}

// Handler performs the upstream request(s) for one tool and returns the value to render.
type Handler func(ctx context.Context, env Env, call Call) (any, error)

// shapeFunc derives the request body or query from the caller's arguments.
type shapeFunc func(env Env, args Args) Args

// only keeps the listed keys.
func only(keys ...string) shapeFunc {
	return func(_ Env, args Args) Args {
		return args.Pick(keys...)
	}
}

// defaulted wraps shape so key is set to value when the caller left it out.
func defaulted(shape shapeFunc, key string, value any) shapeFunc {
	return func(env Env, args Args) Args {
		return shape(env, args).WithDefault(key, value)
	}
}

// stamped keeps the listed keys and sets field to the dispatch time.
func stamped(field string, keys ...string) shapeFunc {
	return func(env Env, args Args) Args {
		var body Args
		body.Set(field, env.Timestamp())
		body.CopyFrom(args, keys...)
		return body
	}
}

// expandPath substitutes {name} segments of tmpl with the matching identifiers and
// returns the remaining arguments.
func expandPath(op, tmpl string, args Args) (string, Args, error) {
	if !strings.Contains(tmpl, "{") {
		return tmpl, args, nil
	}
	var (
		b    strings.Builder
		used []string
	)
	rest := tmpl
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		name := rest[start+1 : start+end]
		id, err := args.Identifier(op, name)
		if err != nil {
			return "", Args{}, err
		}
		b.WriteString(rest[:start])
		b.WriteString(url.PathEscape(id))
		used = append(used, name)
		rest = rest[start+end+1:]
	}
	return b.String(), args.Without(used...), nil
}

func getAt(tmpl string) Handler {
	return func(ctx context.Context, env Env, call Call) (any, error) {
		path, _, err := expandPath(call.Tool, tmpl, call.Args)
		if err != nil {
			return nil, err
		}
		return env.API.Request(ctx, http.MethodGet, path, nil, nil)
	}
}

// queryAt forwards the remaining arguments as query parameters. A nil shape forwards all of them.
func queryAt(tmpl string, shape shapeFunc) Handler {
	return func(ctx context.Context, env Env, call Call) (any, error) {
		path, rest, err := expandPath(call.Tool, tmpl, call.Args)
		if err != nil {
			return nil, err
		}
		if shape != nil {
			rest = shape(env, rest)
		}
		return env.API.Request(ctx, http.MethodGet, path, nil, rest.Query())
	}
}

func sendAt(method, tmpl string, shape shapeFunc) Handler {
	return func(ctx context.Context, env Env, call Call) (any, error) {
		path, rest, err := expandPath(call.Tool, tmpl, call.Args)
		if err != nil {
			return nil, err
		}
		if shape != nil {
			rest = shape(env, rest)
		}
		return env.API.Request(ctx, method, path, rest, nil)
	}
}

func createAt(tmpl string) Handler {
	return sendAt(http.MethodPost, tmpl, nil)
}

// updateAt sends every argument except the path identifiers as a PATCH body.
func updateAt(tmpl string) Handler {
	return sendAt(http.MethodPatch, tmpl, nil)
}

func postAt(tmpl string, shape shapeFunc) Handler {
	return sendAt(http.MethodPost, tmpl, shape)
}

func patchAt(tmpl string, shape shapeFunc) Handler {
	return sendAt(http.MethodPatch, tmpl, shape)
}

func deleteAt(tmpl string) Handler {
	return func(ctx context.Context, env Env, call Call) (any, error) {
		path, _, err := expandPath(call.Tool, tmpl, call.Args)
		if err != nil {
			return nil, err
		}
		return env.API.Request(ctx, http.MethodDelete, path, nil, nil)
	}
}

func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
