package tool

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/mcp-huiting/errors"
	"github.com/kbukum/mcp-huiting/logger"
	"github.com/kbukum/mcp-huiting/observability"
)

// Registry holds the tools exposed by one server and dispatches calls to them.
type Registry struct {
	tools   map[string]Tool
	order   []string
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics records per-call metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("tool")
	}
	return r
}

// Register adds tools. Names must be unique across the registry.
func (r *Registry) Register(tools ...Tool) error {
	for _, t := range tools {
		if t.Name == "" {
			return fmt.Errorf("tool name is required")
		}
		if _, exists := r.tools[t.Name]; exists {
			return fmt.Errorf("tool %s already registered", t.Name)
		}
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return nil
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call dispatches one invocation. It never returns a protocol error: every
// failure, including unknown tools and schema violations, becomes an
// isError result whose text is the error message.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)

	op := observability.NewOperation(name, requestID, r.metrics)
	ctx, span := op.Start(ctx)

	text, err := r.dispatch(ctx, name, args)

	code := ""
	if err != nil {
		code = codeOf(err)
	}
	op.End(ctx, span, code, err)

	log := r.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldTool, name,
		logger.FieldDuration, op.Duration().Milliseconds(),
	))
	if err != nil {
		log.WithError(err).Warn("Tool call failed", logger.Fields(logger.FieldErrorCode, code))
		return mcp.NewToolResultError(err.Error())
	}
	log.Info("Tool call succeeded")
	return mcp.NewToolResultText(text)
}

func (r *Registry) dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", errors.UnknownTool(name)
	}
	return t.invoke(ctx, args)
}

func codeOf(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(errors.ErrCodeInternal)
}

// Mount registers every tool on s, routing tools/call through Call.
func (r *Registry) Mount(s *server.MCPServer) {
	for _, t := range r.Tools() {
		name := t.Name
		s.AddTool(t.Definition(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return r.Call(ctx, name, req.GetArguments()), nil
		})
	}
}
