package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// SchemaViolation creates an AppError for tool arguments that fail the declared schema.
func SchemaViolation(tool, reason string) *AppError {
	return &AppError{
		Code: ErrCodeSchemaViolation, Message: fmt.Sprintf("invalid arguments for %s: %s", tool, reason),
		Details: map[string]any{"tool": tool},
	}
}

// UnknownTool creates an AppError for an invocation of an unregistered tool.
func UnknownTool(name string) *AppError {
	return New(ErrCodeUnknownTool, fmt.Sprintf("tool %q is not registered", name)).WithDetail("tool", name)
}

// FileRead creates an AppError for a local read failure. The OS error text
// reaches the caller through the cause.
func FileRead(path string, cause error) *AppError {
	return New(ErrCodeFileRead, fmt.Sprintf("failed to read file %s", path)).
		WithDetail("path", path).WithCause(cause)
}

// Upload creates an AppError for a non-success response from the upload endpoint.
// The body is kept exactly as the remote service sent it.
func Upload(status int, body string) *AppError {
	return remoteFailure(ErrCodeUpload, "upload failed", status, body)
}

// Transcription creates an AppError for a non-success response from the
// transcription endpoint. The body is kept exactly as the remote service sent it.
func Transcription(status int, body string) *AppError {
	return remoteFailure(ErrCodeTranscription, "transcription failed", status, body)
}

func remoteFailure(code ErrorCode, prefix string, status int, body string) *AppError {
	return &AppError{
		Code:      code,
		Message:   fmt.Sprintf("%s: %d %s", prefix, status, body),
		Retryable: status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
		Details:   map[string]any{"status": status, "body": body},
	}
}

// InvalidResponse creates an AppError for a success response whose body could not be mapped.
func InvalidResponse(operation string, cause error) *AppError {
	return New(ErrCodeInvalidResponse, fmt.Sprintf("unexpected response from %s", operation)).
		WithDetail("operation", operation).WithCause(cause)
}

// ConnectionFailed creates an AppError for a failed connection to a service.
func ConnectionFailed(service string, cause error) *AppError {
	return New(ErrCodeConnectionFailed, fmt.Sprintf("unable to reach %s", service)).
		WithDetail("service", service).WithCause(cause)
}

// Timeout creates an AppError for a request that timed out or was canceled.
func Timeout(operation string, cause error) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("%s did not complete in time", operation)).
		WithDetail("operation", operation).WithCause(cause)
}

// Internal creates an AppError for an unexpected local failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "an unexpected error occurred").WithCause(cause)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
