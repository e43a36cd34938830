package rest

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrLoginFailure is returned by [Client.Login] when the token is rejected.
var ErrLoginFailure = errors.New("improper token has been passed")

// HTTPError represents a failed request to the Discord API.
//
// Status is the HTTP status code, Code the Discord-specific error code from
// the response body (0 when absent). FieldErrors holds per-field problems
// flattened to dotted paths, e.g. "embeds.0.title".
type HTTPError struct {
	Status      int
	Code        int
	Message     string
	FieldErrors map[string]string
}

func (e *HTTPError) Error() string {
	s := fmt.Sprintf("%d %s (error code: %d)", e.Status, http.StatusText(e.Status), e.Code)
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// UnauthorizedError is returned for status code 401.
type UnauthorizedError struct {
	HTTPError
}

// ForbiddenError is returned for status code 403.
type ForbiddenError struct {
	HTTPError
}

// NotFoundError is returned for status code 404.
type NotFoundError struct {
	HTTPError
}

// ServerError is returned for status codes in the 500 range.
type ServerError struct {
	HTTPError
}

// newHTTPError builds an error from a status code and the decoded response
// body. A JSON error body carries the Discord error code, a base message and
// optionally a nested tree of field errors, which is flattened into the
// message.
func newHTTPError(status int, body any) *HTTPError {
	e := &HTTPError{Status: status}
	switch m := body.(type) {
	case map[string]any:
		if c, ok := m["code"].(float64); ok {
			e.Code = int(c)
		}
		base, _ := m["message"].(string)
		if tree, ok := m["errors"].(map[string]any); ok {
			e.FieldErrors = flattenErrors(tree, "")
			keys := make([]string, 0, len(e.FieldErrors))
			for k := range e.FieldErrors {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			lines := make([]string, 0, len(keys))
			for _, k := range keys {
				lines = append(lines, fmt.Sprintf("In %s: %s", k, e.FieldErrors[k]))
			}
			e.Message = base + "\n" + strings.Join(lines, "\n")
		} else {
			e.Message = base
		}
	case string:
		e.Message = m
	}
	return e
}

// classifyStatus wraps an HTTPError in its status-specific type.
func classifyStatus(status int, body any) error {
	e := newHTTPError(status, body)
	switch status {
	case http.StatusUnauthorized:
		return &UnauthorizedError{*e}
	case http.StatusForbidden:
		return &ForbiddenError{*e}
	case http.StatusNotFound:
		return &NotFoundError{*e}
	case http.StatusServiceUnavailable:
		return &ServerError{*e}
	}
	return e
}

// flattenErrors walks Discord's nested field-error tree and produces a flat
// map of dotted paths to messages. A node holding an "_errors" list is a
// leaf; its messages are joined with spaces.
func flattenErrors(tree map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		sub, ok := v.(map[string]any)
		if !ok {
			out[key] = fmt.Sprint(v)
			continue
		}
		if list, ok := sub["_errors"].([]any); ok {
			msgs := make([]string, 0, len(list))
			for _, item := range list {
				if m, ok := item.(map[string]any); ok {
					if msg, ok := m["message"].(string); ok {
						msgs = append(msgs, msg)
					}
				}
			}
			out[key] = strings.Join(msgs, " ")
			continue
		}
		for k2, v2 := range flattenErrors(sub, key) {
			out[k2] = v2
		}
	}
	return out
}
