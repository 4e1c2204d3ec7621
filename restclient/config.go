package restclient

import (
	"fmt"
	"time"

	"github.com/kyazgan/restkit/version"
)

const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	// Name identifies the client in logs and lifecycle summaries.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is the User-Agent header value. Defaults to the module's
	// version string.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures TLS settings for the default transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("restclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
