package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeUnknownTool     ErrorCode = "UNKNOWN_TOOL"
	CodeUpstream        ErrorCode = "UPSTREAM"
	CodeTransport       ErrorCode = "TRANSPORT"
	CodeInternal        ErrorCode = "INTERNAL"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrMissingArgument = errors.New("missing required argument")
	ErrMissingAPIKey   = errors.New("FIELDEDGE_API_KEY environment variable is required")
)

// Error is the tagged failure returned by the upstream client and the tool handlers.
// StatusCode and RawBody are only populated for CodeUpstream.
type Error struct {
	Code       ErrorCode
	Op         string
	Message    string
	Cause      error
	StatusCode int
	RawBody    string
	Meta       map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Detail renders the message shown to callers, without op or code prefixes.
func (e *Error) Detail() string {
	if e == nil {
		return ""
	}
	switch e.Code {
	case CodeUpstream:
		return fmt.Sprintf("FieldEdge API Error (%d): %s", e.StatusCode, e.Message)
	case CodeUnknownTool:
		return fmt.Sprintf("Unknown tool: %s", e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Code)
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		clone := *existing
		clone.Op = op
		return &clone
	}
	return E(code, op, "", err)
}

func InvalidArgument(op, msg string) *Error {
	return E(CodeInvalidArgument, op, msg, nil)
}

// MissingArgument reports a required field that was absent from the call arguments.
func MissingArgument(op, field string) *Error {
	return E(CodeInvalidArgument, op, fmt.Sprintf("%s is required", field), ErrMissingArgument)
}

func UnknownTool(name string) *Error {
	return &Error{
		Code:    CodeUnknownTool,
		Op:      "dispatch",
		Message: name,
		Cause:   ErrUnknownTool,
	}
}

func UpstreamFailure(op string, status int, msg, raw string) *Error {
	return &Error{
		Code:       CodeUpstream,
		Op:         op,
		Message:    msg,
		StatusCode: status,
		RawBody:    raw,
	}
}

func Transport(op string, cause error) *Error {
	return E(CodeTransport, op, "", cause)
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrUnknownTool):
		return CodeUnknownTool, true
	case errors.Is(err, ErrMissingArgument), errors.Is(err, ErrMissingAPIKey):
		return CodeInvalidArgument, true
	default:
		return "", false
	}
}

// StatusCodeFrom returns the upstream HTTP status carried by err, if any.
func StatusCodeFrom(err error) (int, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code == CodeUpstream {
		return domainErr.StatusCode, true
	}
	return 0, false
}

// ErrorText renders err as the single human-readable line placed in an error envelope.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return "Error: " + domainErr.Detail()
	}
	return "Error: " + err.Error()
}
