// Package apperr defines the error taxonomy of the pensum HTTP API and
// its mapping onto status codes.
package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a class of API error.
type Code string

const (
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeNotFound       Code = "NOT_FOUND"
	CodeStoreNotReady  Code = "STORE_NOT_READY"  // vector store empty or still building
	CodeQuotaExceeded  Code = "QUOTA_EXCEEDED"   // upstream LLM billing quota
	CodeUpstreamAuth   Code = "UPSTREAM_AUTH"    // upstream API key invalid or missing
	CodeUpstream       Code = "UPSTREAM_FAILED"  // Canvas or LLM call failed
	CodeInternal       Code = "INTERNAL_ERROR"
)

// Error carries an API error code, a user-facing message and the wrapped
// cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeStoreNotReady:
		return http.StatusServiceUnavailable
	case CodeQuotaExceeded:
		return http.StatusPaymentRequired
	case CodeUpstreamAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// ClassifyUpstream inspects an LLM/API error and maps it onto quota,
// auth or generic upstream failure. Provider SDKs do not expose stable
// error types across OpenAI-compatible backends, so this matches on the
// message text the way the service always has.
func ClassifyUpstream(err error) *Error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "quota"):
		return Wrap(err, CodeQuotaExceeded, "API quota exhausted. Check the billing settings of your provider account.")
	case strings.Contains(msg, "api") && (strings.Contains(msg, "key") || strings.Contains(msg, "auth")):
		return Wrap(err, CodeUpstreamAuth, "API key invalid or missing. Check OPENAI_API_KEY in your .env file.")
	default:
		return Wrap(err, CodeUpstream, "Upstream request failed: "+err.Error())
	}
}
