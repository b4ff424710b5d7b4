package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/mcp-huiting/component"
	"github.com/kbukum/mcp-huiting/logger"
)

// Summary reports what an application started with. It writes through the
// logger rather than stdout, which may be carrying a protocol stream.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a startup summary for a service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// StartupDuration returns the recorded startup duration.
func (s *Summary) StartupDuration() time.Duration {
	return s.startupDuration
}

// Log writes one line per component, one per route, and a closing line
// with the startup duration. Unhealthy components are logged as warnings.
func (s *Summary) Log(ctx context.Context, components *component.Registry, log *logger.Logger) {
	health := make(map[string]component.Health)
	for _, h := range components.HealthAll(ctx) {
		health[h.Name] = h
	}

	for _, c := range components.All() {
		fields := logger.Fields(logger.FieldComponent, c.Name())
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			fields["details"] = desc.Details
			if desc.Port > 0 {
				fields["port"] = desc.Port
			}
		}
		h, ok := health[c.Name()]
		if ok {
			fields[logger.FieldStatus] = string(h.Status)
		}
		if ok && h.Status != component.StatusHealthy {
			if h.Message != "" {
				fields["reason"] = h.Message
			}
			log.Warn("Component not healthy", fields)
		} else {
			log.Info("Component ready", fields)
		}

		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				log.Debug("Route registered", logger.Fields(
					logger.FieldComponent, c.Name(),
					"method", r.Method,
					"path", r.Path,
					"handler", r.Handler,
				))
			}
		}
	}

	log.Info("Startup complete", logger.Fields(
		"service", s.serviceName,
		"version", s.version,
		logger.FieldDuration, s.startupDuration.Milliseconds(),
	))
}
