// Package server provides the HTTP server behind the streamable MCP
// transport. It runs Gin behind an HTTP/2 cleartext (h2c) handler and lets
// plain http.Handlers, such as the MCP endpoint, be mounted on the same
// port.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into the logger context
//   - RequestLogger: one log line per request with status and duration
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /version: build version information
package server
