package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one tool invocation across its span and metrics.
type Operation struct {
	Tool      string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperation creates an operation. If metrics is nil, metric recording is
// silently skipped.
func NewOperation(tool, requestID string, metrics *Metrics) *Operation {
	return &Operation{
		Tool:      tool,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type operationKey struct{}

// WithOperation stores an Operation in the context.
func WithOperation(ctx context.Context, op *Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext retrieves the Operation from context, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	if op, ok := ctx.Value(operationKey{}).(*Operation); ok {
		return op
	}
	return nil
}

// Start opens the tool span and records the start metric. The returned
// context carries both the span and the operation.
func (op *Operation) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanToolCall, trace.WithAttributes(
		attribute.String(AttrTool, op.Tool),
		attribute.String(AttrRequestID, op.RequestID),
	))
	if op.Metrics != nil {
		op.Metrics.RecordToolStart(ctx, op.Tool)
	}
	return WithOperation(ctx, op), span
}

// End closes the span and records the outcome. errCode is empty on success.
func (op *Operation) End(ctx context.Context, span trace.Span, errCode string, err error) {
	duration := op.Duration()

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorCode, errCode))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if op.Metrics != nil {
		op.Metrics.RecordToolEnd(ctx, op.Tool, errCode, duration)
	}
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
