package core

import (
	"fmt"
	"strings"
	"time"
)

// TransportConfig selects and tunes the transport built by the top-level
// factory. Endpoint may stay empty when a pre-built Transport is injected.
type TransportConfig struct {
	Kind                 string        `koanf:"kind" mapstructure:"kind"`
	Endpoint             string        `koanf:"endpoint" mapstructure:"endpoint"`
	RequestTimeout       time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	MaxResponseBodyBytes int64         `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	Transport   TransportConfig `koanf:"transport" mapstructure:"transport"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "entitlements",
		Transport: TransportConfig{
			Kind:                 "graphql",
			RequestTimeout:       30 * time.Second,
			MaxResponseBodyBytes: 1 << 20,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Transport.Kind) == "" {
		return fmt.Errorf("core: transport.kind is required")
	}
	if c.Transport.RequestTimeout < 0 {
		return fmt.Errorf("core: transport.request_timeout must not be negative")
	}
	if c.Transport.MaxResponseBodyBytes < 0 {
		return fmt.Errorf("core: transport.max_response_body_bytes must not be negative")
	}
	return nil
}
