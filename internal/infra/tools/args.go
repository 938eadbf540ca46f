package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"fieldedge/internal/domain"
)

// Args is the argument bag of one tool call. Keys keep the order the caller sent them,
// so query strings and request bodies are rendered deterministically.
type Args struct {
	keys   []string
	values map[string]any
}

// ParseArgs decodes a JSON object. Empty input and null decode to an empty bag.
// Numbers are kept as json.Number so they are forwarded verbatim.
func ParseArgs(raw json.RawMessage) (Args, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Args{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Args{}, fmt.Errorf("decode arguments: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Args{}, errors.New("arguments must be a JSON object")
	}

	var args Args
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Args{}, fmt.Errorf("decode arguments: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Args{}, errors.New("arguments must be a JSON object")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return Args{}, fmt.Errorf("decode argument %q: %w", key, err)
		}
		args.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return Args{}, fmt.Errorf("decode arguments: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Args{}, errors.New("unexpected data after arguments object")
	}
	return args, nil
}

// NewArgs builds a bag from alternating key/value pairs.
func NewArgs(pairs ...any) Args {
	var args Args
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		args.Set(key, pairs[i+1])
	}
	return args
}

func (a Args) Len() int {
	return len(a.keys)
}

func (a Args) Keys() []string {
	return append([]string(nil), a.keys...)
}

func (a Args) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

func (a Args) Get(key string) (any, bool) {
	value, ok := a.values[key]
	return value, ok
}

// Set stores value under key. An existing key keeps its position.
func (a *Args) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// CopyFrom copies key from src when src has it.
func (a *Args) CopyFrom(src Args, keys ...string) {
	for _, key := range keys {
		if value, ok := src.values[key]; ok {
			a.Set(key, value)
		}
	}
}

// Pick returns a bag holding only the listed keys that are present, in the listed order.
func (a Args) Pick(keys ...string) Args {
	var out Args
	out.CopyFrom(a, keys...)
	return out
}

// Without returns a copy of the bag with the listed keys removed.
func (a Args) Without(keys ...string) Args {
	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		drop[key] = struct{}{}
	}
	var out Args
	for _, key := range a.keys {
		if _, skip := drop[key]; skip {
			continue
		}
		out.Set(key, a.values[key])
	}
	return out
}

// WithDefault sets key to value when the caller did not provide it.
func (a Args) WithDefault(key string, value any) Args {
	out := a.Without()
	if !out.Has(key) || out.values[key] == nil {
		out.Set(key, value)
	}
	return out
}

// Identifier returns key rendered as a path segment. Strings and numbers are accepted.
func (a Args) Identifier(op, key string) (string, error) {
	value, ok := a.values[key]
	if !ok || value == nil {
		return "", domain.MissingArgument(op, key)
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", domain.MissingArgument(op, key)
		}
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", domain.InvalidArgument(op, fmt.Sprintf("%s must be a string", key))
	}
}

// Missing lists required keys that are absent or null.
func (a Args) Missing(required []string) []string {
	var missing []string
	for _, key := range required {
		if value, ok := a.values[key]; !ok || value == nil {
			missing = append(missing, key)
		}
	}
	return missing
}

// Query renders the bag as query parameters in key order.
func (a Args) Query() domain.Query {
	if len(a.keys) == 0 {
		return nil
	}
	query := make(domain.Query, 0, len(a.keys))
	for _, key := range a.keys {
		query = query.Add(key, a.values[key])
	}
	return query
}

func (a Args) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := json.Marshal(a.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode argument %q: %w", key, err)
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
