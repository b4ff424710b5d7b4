// Package component defines the lifecycle contract shared by the bridge's
// infrastructure pieces (outbound HTTP adapter, telemetry providers, HTTP
// transport server).
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse order.
package component
