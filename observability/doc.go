// Package observability wires OpenTelemetry tracing and metrics for the
// bridge.
//
// When an OTLP endpoint is configured, the Telemetry component installs SDK
// tracer and meter providers exporting over OTLP/HTTP. Without one, the
// global no-op providers stay in place and every span and instrument is free.
//
//	tel := observability.NewTelemetry(cfg.Otel, "mcp-huiting", version.Short(), "production")
//	_ = tel.Start(ctx)
//	defer tel.Stop(ctx)
//
//	metrics, _ := observability.NewMetrics(observability.Meter("mcp-huiting"))
//	op := observability.NewOperation("upload_audio", requestID, metrics)
//	ctx, span := op.Start(ctx)
//	defer op.End(ctx, span, err)
package observability
