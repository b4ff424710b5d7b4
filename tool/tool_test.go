package tool

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/mcp-huiting/errors"
	"github.com/kbukum/mcp-huiting/observability"
)

type echoArgs struct {
	Text  string `json:"text" validate:"required"`
	Label string `json:"label"`
}

type pathArgs struct {
	Path string `json:"path" validate:"required,abspath"`
}

func newEcho(calls *int, fail error) Tool {
	return New("echo", "Echo text back.", []Param{
		{Name: "text", Description: "Text to echo", Required: true},
		{Name: "label", Description: "Optional prefix"},
	}, func(ctx context.Context, args echoArgs) (string, error) {
		*calls++
		if fail != nil {
			return "", fail
		}
		if args.Label != "" {
			return args.Label + ": " + args.Text, nil
		}
		return args.Text, nil
	})
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil {
		t.Fatal("expected result")
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("expected text content, got %T", res.Content[0])
		return ""
	}
}

func TestRegistryCallSuccess(t *testing.T) {
	calls := 0
	r := NewRegistry()
	if err := r.Register(newEcho(&calls, nil)); err != nil {
		t.Fatalf("register: %v", err)
	}

	res := r.Call(context.Background(), "echo", map[string]any{"text": "hello", "label": "x"})
	if res.IsError {
		t.Fatalf("unexpected error result: %q", resultText(t, res))
	}
	if got := resultText(t, res); got != "x: hello" {
		t.Errorf("expected %q, got %q", "x: hello", got)
	}
	if calls != 1 {
		t.Errorf("expected handler called once, got %d", calls)
	}
}

func TestRegistryEmptyResultIsText(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(New("empty", "", nil, func(ctx context.Context, args struct{}) (string, error) {
		return "", nil
	}))
	res := r.Call(context.Background(), "empty", nil)
	if res.IsError {
		t.Fatal("expected success")
	}
	if got := resultText(t, res); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestRegistrySchemaViolationSkipsHandler(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing required", map[string]any{}, "text is required"},
		{"nil arguments", nil, "text is required"},
		{"wrong type", map[string]any{"text": 42}, "text must be of type string"},
		{"empty string", map[string]any{"text": ""}, "text is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			r := NewRegistry()
			_ = r.Register(newEcho(&calls, nil))

			res := r.Call(context.Background(), "echo", tc.args)
			if !res.IsError {
				t.Fatal("expected error result")
			}
			text := resultText(t, res)
			if !strings.HasPrefix(text, string(errors.ErrCodeSchemaViolation)) {
				t.Errorf("expected schema violation, got %q", text)
			}
			if !strings.Contains(text, tc.want) {
				t.Errorf("expected %q in %q", tc.want, text)
			}
			if calls != 0 {
				t.Errorf("handler must not run on invalid arguments, ran %d times", calls)
			}
		})
	}
}

type handleArgs struct {
	Handle string `json:"handle"`
}

func TestRegistryRequiredMeansPresent(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"empty string reaches handler", map[string]any{"handle": ""}, false},
		{"value reaches handler", map[string]any{"handle": "u-1"}, false},
		{"null", map[string]any{"handle": nil}, true},
		{"absent", map[string]any{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen []string
			r := NewRegistry()
			_ = r.Register(New("lookup", "", []Param{{Name: "handle", Required: true}},
				func(ctx context.Context, args handleArgs) (string, error) {
					seen = append(seen, args.Handle)
					return "[" + args.Handle + "]", nil
				}))

			res := r.Call(context.Background(), "lookup", tc.args)
			if tc.wantErr {
				if !res.IsError || !strings.Contains(resultText(t, res), "handle is required") {
					t.Errorf("expected presence violation, got %q", resultText(t, res))
				}
				if len(seen) != 0 {
					t.Errorf("handler must not run, saw %q", seen)
				}
				return
			}
			if res.IsError || len(seen) != 1 || seen[0] != tc.args["handle"] {
				t.Errorf("expected handler to see %q, got %q (result %q)", tc.args["handle"], seen, resultText(t, res))
			}
		})
	}
}

func TestRegistryAbsolutePathRule(t *testing.T) {
	calls := 0
	r := NewRegistry()
	_ = r.Register(New("read", "", []Param{{Name: "path", Required: true}},
		func(ctx context.Context, args pathArgs) (string, error) {
			calls++
			return args.Path, nil
		}))

	res := r.Call(context.Background(), "read", map[string]any{"path": "relative/file.wav"})
	if !res.IsError || !strings.Contains(resultText(t, res), "path must be an absolute path") {
		t.Errorf("expected abspath violation, got %+v", res)
	}
	if calls != 0 {
		t.Errorf("expected no handler call, got %d", calls)
	}
}

func TestRegistryHandlerErrorBecomesErrorResult(t *testing.T) {
	calls := 0
	r := NewRegistry()
	_ = r.Register(newEcho(&calls, errors.Transcription(500, "boom")))

	res := r.Call(context.Background(), "echo", map[string]any{"text": "hi"})
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); !strings.Contains(got, "transcription failed: 500 boom") {
		t.Errorf("unexpected text %q", got)
	}
	if calls != 1 {
		t.Errorf("expected one handler call, got %d", calls)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry()
	res := r.Call(context.Background(), "missing", nil)
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); !strings.HasPrefix(got, string(errors.ErrCodeUnknownTool)) {
		t.Errorf("expected unknown tool error, got %q", got)
	}
}

func TestRegistryRegisterRejectsDuplicates(t *testing.T) {
	calls := 0
	r := NewRegistry()
	if err := r.Register(newEcho(&calls, nil)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(newEcho(&calls, nil)); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := r.Register(Tool{}); err == nil {
		t.Error("expected unnamed tool to be rejected")
	}
	if len(r.Tools()) != 1 {
		t.Errorf("expected 1 tool, got %d", len(r.Tools()))
	}
}

func TestRegistryRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	calls := 0
	r := NewRegistry(WithMetrics(metrics))
	_ = r.Register(newEcho(&calls, nil))

	ctx := context.Background()
	r.Call(ctx, "echo", map[string]any{"text": "ok"})
	r.Call(ctx, "echo", map[string]any{})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := counterTotal(rm, "tool.calls"); got != 2 {
		t.Errorf("expected 2 tool.calls, got %d", got)
	}
	if got := counterTotal(rm, "tool.errors"); got != 1 {
		t.Errorf("expected 1 tool.errors, got %d", got)
	}
}

func counterTotal(rm metricdata.ResourceMetrics, name string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestDefinitionSchema(t *testing.T) {
	calls := 0
	def := newEcho(&calls, nil).Definition()

	if def.Name != "echo" || def.Description != "Echo text back." {
		t.Errorf("unexpected definition %q %q", def.Name, def.Description)
	}
	if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "text" {
		t.Errorf("expected only text required, got %v", def.InputSchema.Required)
	}
	for _, name := range []string{"text", "label"} {
		prop, ok := def.InputSchema.Properties[name].(map[string]any)
		if !ok {
			t.Fatalf("expected property %s, got %v", name, def.InputSchema.Properties)
		}
		if prop["type"] != "string" {
			t.Errorf("expected %s to be a string, got %v", name, prop["type"])
		}
	}
}

func TestMountOverInProcessClient(t *testing.T) {
	calls := 0
	r := NewRegistry()
	_ = r.Register(newEcho(&calls, nil))

	s := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(false))
	r.Mount(s)

	c, err := client.NewInProcessClient(s)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	list, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(list.Tools) != 1 || list.Tools[0].Name != "echo" {
		t.Fatalf("expected echo tool, got %+v", list.Tools)
	}

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "echo"
	callReq.Params.Arguments = map[string]any{"text": "over the wire"}
	res, err := c.CallTool(ctx, callReq)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if got := resultText(t, res); got != "over the wire" {
		t.Errorf("expected echoed text, got %q", got)
	}

	callReq.Params.Arguments = map[string]any{"label": "only"}
	res, err = c.CallTool(ctx, callReq)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !res.IsError {
		t.Error("expected isError result for missing argument")
	}
	if calls != 1 {
		t.Errorf("expected exactly one handler call, got %d", calls)
	}
}

func ExampleNew() {
	type greetArgs struct {
		Name string `json:"name" validate:"required"`
	}
	greet := New("greet", "Say hello.", []Param{{Name: "name", Required: true}},
		func(ctx context.Context, args greetArgs) (string, error) {
			return "hello " + args.Name, nil
		})

	r := NewRegistry()
	_ = r.Register(greet)
	res := r.Call(context.Background(), "greet", map[string]any{"name": "huiting"})
	fmt.Println(res.IsError)
	// Output: false
}
