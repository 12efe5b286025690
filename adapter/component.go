package adapter

import (
	"context"
	"fmt"

	"github.com/kbukum/geohttp/component"
)

// Component wraps an Adapter with lifecycle management. Use this when the
// adapter is part of a managed application with coordinated Start/Stop.
type Component struct {
	adapter Adapter
	config  Config
	name    string
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new adapter component. The adapter is created
// lazily in Start().
func NewComponent(name string, cfg Config) *Component {
	return &Component{name: name, config: cfg}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.name == "" {
		return "geohttp"
	}
	return c.name
}

// Start constructs the adapter.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.config)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

// Stop closes the adapter and releases its connections.
func (c *Component) Stop(_ context.Context) error {
	if c.adapter != nil {
		return c.adapter.Close()
	}
	return nil
}

// Health reports whether the adapter has been started.
func (c *Component) Health(_ context.Context) component.Health {
	if c.adapter == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns the component description for startup summaries.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()

	details := string(cfg.Impl)
	if len(cfg.Proxies) > 0 {
		details += fmt.Sprintf(" proxies=%d", len(cfg.Proxies))
	}
	if cfg.TLS != nil {
		details += " tls=custom"
	}

	return component.Description{
		Name:    c.Name(),
		Type:    "http-adapter",
		Details: details,
	}
}

// Adapter returns the underlying adapter. Must be called after Start().
func (c *Component) Adapter() Adapter {
	return c.adapter
}
