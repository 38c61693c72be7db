package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// StatusCancelled is the reserved status for caller-initiated cancellation.
// It is distinct from every transport failure and never retried.
const StatusCancelled = 499

// Error is the single normalized failure type the pipeline produces.
// Status 0 means no response was received at all.
type Error struct {
	Status         int
	Message        string
	Data           []byte
	Headers        http.Header
	IsNetworkError bool
}

func (e *Error) Error() string {
	return e.Message
}

// AsError extracts the pipeline error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// cancelled builds the dedicated cancellation error.
func cancelled() *Error {
	return &Error{
		Status:  StatusCancelled,
		Message: "Request was cancelled",
	}
}

// networkError wraps a transport-level failure where no response arrived.
func networkError(err error) *Error {
	msg := "Request failed"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Status:         0,
		Message:        msg,
		IsNetworkError: true,
	}
}

// fromResponse normalizes a received non-2xx response. The message is
// derived from the body's message field, else the plain-text body, else the
// status text, in that order. Mapping is deterministic: the same response
// always yields the same Error.
func fromResponse(resp *http.Response, body []byte) *Error {
	return &Error{
		Status:         resp.StatusCode,
		Message:        messageFromBody(body, resp.StatusCode),
		Data:           body,
		Headers:        resp.Header.Clone(),
		IsNetworkError: false,
	}
}

func messageFromBody(body []byte, status int) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return statusText(status)
	}

	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Message != "" {
				return payload.Message
			}
			return statusText(status)
		}
	}
	return trimmed
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}
