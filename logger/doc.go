// Package logger provides structured logging using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields. Output defaults to
// stderr because stdout carries the MCP stdio stream.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("gateway")
//	log.Info("upload accepted", logger.Fields("bytes", n))
package logger
