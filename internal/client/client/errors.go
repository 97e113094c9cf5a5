package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnexpected   = errors.New("unexpected response")
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	// Fields holds per-field validation messages, keyed by form field name.
	Fields map[string]string

	kind error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func kindForStatus(code int) error {
	switch {
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrValidation
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrUnexpected
	}
}

// errorBody covers the shapes the backend uses for failures:
// {"message": ...}, {"error": ...} and express-validator style
// {"errors": [{"param"|"path": ..., "msg": ...}]}.
type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Errors  json.RawMessage `json:"errors"`
}

type fieldError struct {
	Param   string `json:"param"`
	Path    string `json:"path"`
	Field   string `json:"field"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (f fieldError) name() string {
	for _, n := range []string{f.Param, f.Path, f.Field} {
		if n != "" {
			return n
		}
	}
	return ""
}

func (f fieldError) text() string {
	if f.Msg != "" {
		return f.Msg
	}
	return f.Message
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, kind: kindForStatus(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	for _, m := range []string{body.Message, body.Error, body.Msg} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}
	apiErr.Fields = parseFieldErrors(body.Errors)

	if apiErr.Message == "" && len(apiErr.Fields) > 0 {
		for _, f := range []string{"email", "password", "name", "content"} {
			if m, ok := apiErr.Fields[f]; ok {
				apiErr.Message = m
				break
			}
		}
	}
	return apiErr
}

func parseFieldErrors(raw json.RawMessage) map[string]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []fieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		fields := make(map[string]string, len(list))
		for _, f := range list {
			if name := f.name(); name != "" {
				if _, seen := fields[name]; !seen {
					fields[name] = f.text()
				}
			}
		}
		return nonEmpty(fields)
	}

	var byName map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil
	}
	fields := make(map[string]string, len(byName))
	for name, v := range byName {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[name] = s
			continue
		}
		var f fieldError
		if err := json.Unmarshal(v, &f); err == nil {
			fields[name] = f.text()
		}
	}
	return nonEmpty(fields)
}

func nonEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

// FieldErrors extracts per-field messages from err, if it carries any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
