package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/geohttp/logger"
	"github.com/kbukum/geohttp/security"
)

const defaultTimeout = 30 * time.Second

// Settings holds process-level geohttp configuration.
type Settings struct {
	// Adapter selects the default transport implementation: "std" or
	// "pooled". Empty selects pooled.
	Adapter string `yaml:"adapter" mapstructure:"adapter" validate:"omitempty,oneof=std pooled"`

	// Timeout is the default per-call timeout applied when a call does
	// not specify one.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent overrides the default User-Agent header. Public geocoding
	// APIs typically require an identifying agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Proxies maps a URL scheme to a proxy endpoint. An explicitly empty
	// map disables proxies entirely, including environment defaults;
	// leaving the field unset allows environment proxy settings.
	Proxies map[string]string `yaml:"proxies" mapstructure:"proxies" validate:"omitempty,dive,keys,oneof=http https,endkeys,required"`

	// TLS configures a custom trust context for HTTPS connections.
	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Log configures the library logger.
	Log logger.Config `yaml:"log" mapstructure:"log"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (s *Settings) ApplyDefaults() {
	if s.Adapter == "" {
		s.Adapter = "pooled"
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	s.Log.ApplyDefaults()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the settings are consistent.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.TLS.Validate(); err != nil {
		return err
	}
	if err := s.Log.Validate(); err != nil {
		return err
	}
	return nil
}
