package observability

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const defaultExportInterval = 15 * time.Second

// Config selects where telemetry is exported. An empty Endpoint disables
// export entirely.
type Config struct {
	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318"),
	// or a base URL as in OTEL_EXPORTER_OTLP_ENDPOINT.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// Enabled reports whether an exporter endpoint is configured.
func (c *Config) Enabled() bool {
	return c.Endpoint != ""
}

// ApplyDefaults fills in zero-value fields. A URL endpoint without a path is
// reduced to its host; http selects an insecure exporter.
func (c *Config) ApplyDefaults() {
	if u, err := url.Parse(c.Endpoint); err == nil && u.Host != "" &&
		(u.Scheme == "http" || u.Scheme == "https") && strings.Trim(u.Path, "/") == "" {
		c.Endpoint = u.Host
		c.Insecure = c.Insecure || u.Scheme == "http"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval <= 0 {
		c.Interval = defaultExportInterval
	}
}

// Validate checks the endpoint form and the sampling ratio.
func (c *Config) Validate() error {
	if strings.Contains(c.Endpoint, "/") {
		return fmt.Errorf("otel.endpoint must be host:port or a URL without a path (got: %s)", c.Endpoint)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("otel.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	return nil
}
