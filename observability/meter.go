package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/mcp-huiting/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the bridge's instruments: tool invocations and the outbound
// calls they make to the transcription service.
type Metrics struct {
	toolCalls    metric.Int64Counter
	toolDuration metric.Float64Histogram
	toolErrors   metric.Int64Counter
	toolActive   metric.Int64UpDownCounter
	httpRequests metric.Int64Counter
	httpDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	toolCalls, err := meter.Int64Counter("tool.calls",
		metric.WithDescription("Tool invocations by tool and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool.calls counter: %w", err)
	}

	toolDuration, err := meter.Float64Histogram("tool.duration",
		metric.WithDescription("Duration of tool invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool.duration histogram: %w", err)
	}

	toolErrors, err := meter.Int64Counter("tool.errors",
		metric.WithDescription("Failed tool invocations by tool and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool.errors counter: %w", err)
	}

	toolActive, err := meter.Int64UpDownCounter("tool.active",
		metric.WithDescription("Tool invocations in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool.active gauge: %w", err)
	}

	httpRequests, err := meter.Int64Counter("http.client.requests",
		metric.WithDescription("Outbound requests to the transcription service"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.client.requests counter: %w", err)
	}

	httpDuration, err := meter.Float64Histogram("http.client.duration",
		metric.WithDescription("Duration of outbound requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.client.duration histogram: %w", err)
	}

	return &Metrics{
		toolCalls:    toolCalls,
		toolDuration: toolDuration,
		toolErrors:   toolErrors,
		toolActive:   toolActive,
		httpRequests: httpRequests,
		httpDuration: httpDuration,
	}, nil
}

// RecordToolStart increments the in-flight tool count.
func (m *Metrics) RecordToolStart(ctx context.Context, tool string) {
	m.toolActive.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordToolEnd decrements the in-flight count and records the finished call.
// errCode is empty on success.
func (m *Metrics) RecordToolEnd(ctx context.Context, tool, errCode string, duration time.Duration) {
	toolAttr := attribute.String("tool", tool)
	status := "ok"
	if errCode != "" {
		status = "error"
	}
	m.toolActive.Add(ctx, -1, metric.WithAttributes(toolAttr))
	m.toolCalls.Add(ctx, 1, metric.WithAttributes(toolAttr, attribute.String("status", status)))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(toolAttr))
	if errCode != "" {
		m.toolErrors.Add(ctx, 1, metric.WithAttributes(toolAttr, attribute.String("code", errCode)))
	}
}

// RecordHTTPRequest records one outbound request. status is 0 when no
// response was received.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, duration.Seconds(), attrs)
}
