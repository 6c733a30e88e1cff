// Package errors provides the standardized error taxonomy surfaced by the idea
// pipeline commands. Every message is meant to be shown to the caller verbatim.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Pipeline errors
	ErrCodeTransport     ErrorCode = "TRANSPORT_ERROR"
	ErrCodeAPI           ErrorCode = "API_ERROR"
	ErrCodeDecode        ErrorCode = "DECODE_ERROR"
	ErrCodeEmptyResponse ErrorCode = "EMPTY_RESPONSE"

	// Credential store errors
	ErrCodeStore ErrorCode = "STORE_ERROR"

	// Host-level errors
	ErrCodeMissingAPIKey  ErrorCode = "MISSING_API_KEY"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInvalidConfig  ErrorCode = "INVALID_CONFIG"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Retryable is a
// hint for the host on whether asking the user to try again may succeed;
// nothing in this module retries.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTransportError reports a request that produced no complete HTTP
// response: DNS, connect or TLS failures, timeouts, a cancelled context or a
// connection dropped mid-body.
func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   "Request failed",
		Details:   errDetail(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAPIError reports a non-2xx status together with the server's body.
func NewAPIError(statusCode int, body string) *StandardError {
	return &StandardError{
		Code:       ErrCodeAPI,
		Message:    fmt.Sprintf("API error %d", statusCode),
		Details:    body,
		StatusCode: statusCode,
		Retryable:  statusCode == 429 || statusCode >= 500,
		Timestamp:  time.Now().UTC(),
	}
}

// NewDecodeError carries both the parser diagnostic and the offending text.
func NewDecodeError(err error, text string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDecode,
		Message:   "Failed to parse JSON",
		Details:   fmt.Sprintf("%s. Response: %s", errDetail(err), text),
		Retryable: false,
		Metadata:  map[string]interface{}{"response": text},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewEmptyResponseError reports a completion without any content block.
func NewEmptyResponseError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResponse,
		Message:   "No content in response",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreError reports a credential store failure. "No entry" is never a
// store error.
func NewStoreError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStore,
		Message:   fmt.Sprintf("Credential store %s failed", operation),
		Details:   errDetail(err),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMissingAPIKeyError is returned by hosts that found no key to use.
func NewMissingAPIKeyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingAPIKey,
		Message:   "Please set your API key in settings first",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports malformed host input.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidConfigError reports a configuration that cannot be used.
func NewInvalidConfigError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidConfig,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard returns the StandardError in err's chain, normalizing anything
// else to INTERNAL_ERROR.
func AsStandard(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf returns the error code of err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsStandard(err).Code
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTransport:
		return "NETWORK"
	case ErrCodeAPI:
		return "PROVIDER"
	case ErrCodeDecode, ErrCodeEmptyResponse:
		return "PAYLOAD"
	case ErrCodeStore, ErrCodeMissingAPIKey:
		return "CREDENTIAL"
	}
	codeStr := string(code)
	if strings.HasPrefix(codeStr, "INVALID") {
		return "VALIDATION"
	}
	return "OTHER"
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
