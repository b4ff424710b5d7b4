// Package bridge wires the HuiTing transcription service to an MCP server.
//
// It builds the tool set for the configured audio source (inline base64 or
// absolute file path), binds each tool to a gateway.Client, and serves the
// result over stdio or streamable HTTP inside a bootstrap.App lifecycle.
package bridge
