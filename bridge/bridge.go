package bridge

import (
	"context"
	"fmt"
	"io"
	stdlog "log"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/mcp-huiting/bootstrap"
	"github.com/kbukum/mcp-huiting/gateway"
	"github.com/kbukum/mcp-huiting/httpclient"
	"github.com/kbukum/mcp-huiting/logger"
	"github.com/kbukum/mcp-huiting/observability"
	"github.com/kbukum/mcp-huiting/server"
	"github.com/kbukum/mcp-huiting/tool"
)

// MCPPath is where the streamable HTTP transport is mounted.
const MCPPath = "/mcp"

// Bridge is one configured bridge process.
type Bridge struct {
	App *bootstrap.App[*Config]

	mcp      *mcpserver.MCPServer
	http     *httpclient.Component
	server   *server.ServerComponent
	registry *tool.Registry
}

// New validates cfg and assembles the components. Nothing is started until
// Serve.
func New(cfg *Config, opts ...bootstrap.Option) (*Bridge, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(ServiceName))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	b := &Bridge{
		App: app,
		mcp: mcpserver.NewMCPServer(cfg.Name, cfg.Version, mcpserver.WithToolCapabilities(false)),
		http: httpclient.NewComponent(cfg.HTTPClientConfig(),
			httpclient.WithLogger(app.Logger.WithComponent("httpclient")),
			httpclient.WithMetrics(metrics),
		),
		registry: tool.NewRegistry(
			tool.WithLogger(app.Logger.WithComponent("tool")),
			tool.WithMetrics(metrics),
		),
	}

	if err := app.RegisterComponent(observability.NewTelemetry(cfg.Otel, cfg.Name, cfg.Version, cfg.Environment)); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(b.http); err != nil {
		return nil, err
	}

	if cfg.Transport.Mode == TransportHTTP {
		srv := server.New(cfg.Transport.Config, app.Logger)
		srv.ApplyDefaults(cfg.Name, cfg.Version, app.Components.HealthAll)
		b.server = server.NewComponent(srv)
		b.server.Mount(MCPPath, "streamable-http", mcpserver.NewStreamableHTTPServer(b.mcp))
		if err := app.RegisterComponent(b.server); err != nil {
			return nil, err
		}
	}

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		client := gateway.NewClient(b.http.Adapter())
		if err := b.registry.Register(Tools(client, a.Cfg.Huiting.AudioSource)...); err != nil {
			return err
		}
		b.registry.Mount(b.mcp)
		a.Logger.Info("Tools registered", logger.Fields(
			"tools", len(b.registry.Tools()),
			"audio_source", a.Cfg.Huiting.AudioSource,
			"api_url", a.Cfg.Huiting.APIURL,
		))
		return nil
	})

	return b, nil
}

// Registry returns the tool registry. It is populated once Serve has
// started the components.
func (b *Bridge) Registry() *tool.Registry { return b.registry }

// MCPServer returns the underlying MCP server.
func (b *Bridge) MCPServer() *mcpserver.MCPServer { return b.mcp }

// HTTPServer returns the HTTP transport server, or nil in stdio mode.
func (b *Bridge) HTTPServer() *server.Server {
	if b.server == nil {
		return nil
	}
	return b.server.Server()
}

// Serve runs the bridge until the transport ends. In stdio mode that is
// when in reaches EOF or ctx is canceled; in http mode it is a signal or
// ctx cancellation.
func (b *Bridge) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if b.server != nil {
		return b.App.Run(ctx)
	}
	return b.App.RunTask(ctx, func(ctx context.Context) error {
		stdio := mcpserver.NewStdioServer(b.mcp)
		stdio.SetErrorLogger(stdlog.New(b.App.Logger.WithComponent("stdio").GetLogger(), "", 0))
		return stdio.Listen(ctx, in, out)
	})
}
