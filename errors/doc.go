// Package errors provides the error kinds surfaced by the bridge.
//
// Local failures (FileRead), remote failures (Upload, Transcription),
// transport-level failures (ConnectionFailed, Timeout) and invocation
// failures (SchemaViolation, UnknownTool) each carry a distinct code so a
// caller can tell which side needs fixing.
package errors
