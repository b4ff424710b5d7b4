package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Invocation errors, raised before any handler runs.
const (
	// ErrCodeSchemaViolation indicates tool arguments do not match the declared schema.
	ErrCodeSchemaViolation ErrorCode = "SCHEMA_VIOLATION"
	// ErrCodeUnknownTool indicates the requested tool is not registered.
	ErrCodeUnknownTool ErrorCode = "UNKNOWN_TOOL"
)

// Local I/O errors
const (
	// ErrCodeFileRead indicates the audio file could not be read from disk.
	ErrCodeFileRead ErrorCode = "FILE_READ_ERROR"
)

// Remote service errors
const (
	// ErrCodeUpload indicates the upload endpoint returned a non-success status.
	ErrCodeUpload ErrorCode = "UPLOAD_FAILED"
	// ErrCodeTranscription indicates the transcription endpoint returned a non-success status.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeInvalidResponse indicates a success response whose body could not be mapped.
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection to the remote service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected local failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// The bridge itself never retries; the flag is reported to the caller.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
