package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/mcp-huiting/config"
	"github.com/kbukum/mcp-huiting/gateway"
	"github.com/kbukum/mcp-huiting/httpclient"
	"github.com/kbukum/mcp-huiting/observability"
	"github.com/kbukum/mcp-huiting/server"
	"github.com/kbukum/mcp-huiting/validation"
	"github.com/kbukum/mcp-huiting/version"
)

// ServiceName is the executable and MCP server name.
const ServiceName = "mcp-huiting"

const (
	defaultAPIURL  = "http://localhost:8000"
	defaultTimeout = 10 * time.Minute

	// TransportStdio serves MCP over stdin and stdout.
	TransportStdio = "stdio"
	// TransportHTTP serves MCP over streamable HTTP at /mcp.
	TransportHTTP = "http"
)

// Config is the complete configuration of the bridge.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Huiting   HuitingConfig        `yaml:"huiting" mapstructure:"huiting"`
	Transport TransportConfig      `yaml:"transport" mapstructure:"transport"`
	Otel      observability.Config `yaml:"otel" mapstructure:"otel"`
}

// HuitingConfig points the bridge at the remote service.
type HuitingConfig struct {
	// APIURL is the service root; a trailing slash is dropped.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`
	// Timeout bounds each outbound call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// AudioSource selects the upload_audio variant: inline or path.
	AudioSource string `yaml:"audio_source" mapstructure:"audio_source"`
}

// TransportConfig selects how MCP is served. Host and port apply to the
// http mode only.
type TransportConfig struct {
	Mode          string `yaml:"mode" mapstructure:"mode"`
	server.Config `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Huiting.APIURL == "" {
		c.Huiting.APIURL = defaultAPIURL
	}
	c.Huiting.APIURL = strings.TrimSuffix(c.Huiting.APIURL, "/")
	if c.Huiting.Timeout == 0 {
		c.Huiting.Timeout = defaultTimeout
	}
	if c.Huiting.AudioSource == "" {
		c.Huiting.AudioSource = gateway.SourceInline
	}

	if c.Transport.Mode == "" {
		c.Transport.Mode = TransportStdio
	}
	c.Transport.Config.ApplyDefaults()
	c.Otel.ApplyDefaults()
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}

	v := validation.New()
	v.Required("huiting.api_url", c.Huiting.APIURL).
		HTTPURL("huiting.api_url", c.Huiting.APIURL).
		Custom(c.Huiting.Timeout > 0, "huiting.timeout", "must be greater than zero").
		Required("huiting.audio_source", c.Huiting.AudioSource).
		OneOf("huiting.audio_source", c.Huiting.AudioSource, []string{gateway.SourceInline, gateway.SourcePath}).
		OneOf("transport.mode", c.Transport.Mode, []string{TransportStdio, TransportHTTP})
	if err := c.Transport.Config.Validate(); err != nil {
		v.AddError("transport", err.Error())
	}
	if err := c.Otel.Validate(); err != nil {
		v.AddError("otel", err.Error())
	}
	return v.Err()
}

// HTTPClientConfig returns the outbound adapter configuration.
func (c *Config) HTTPClientConfig() httpclient.Config {
	return httpclient.Config{
		Name:      "huiting-http",
		BaseURL:   c.Huiting.APIURL,
		Timeout:   c.Huiting.Timeout,
		UserAgent: version.UserAgent(ServiceName),
	}
}

// String summarises the effective settings for logs.
func (c *Config) String() string {
	return fmt.Sprintf("api=%s source=%s transport=%s", c.Huiting.APIURL, c.Huiting.AudioSource, c.Transport.Mode)
}
