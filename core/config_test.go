package core

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServiceName != "entitlements" {
		t.Fatalf("expected entitlements service name, got %q", cfg.ServiceName)
	}
	if cfg.Transport.Kind != "graphql" {
		t.Fatalf("expected graphql transport kind, got %q", cfg.Transport.Kind)
	}
	if cfg.Transport.RequestTimeout != 30*time.Second {
		t.Fatalf("expected 30s request timeout, got %v", cfg.Transport.RequestTimeout)
	}
	if cfg.Transport.MaxResponseBodyBytes != 1<<20 {
		t.Fatalf("expected 1MiB response cap, got %d", cfg.Transport.MaxResponseBodyBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "missing service name",
			mutate:  func(cfg *Config) { cfg.ServiceName = " " },
			wantErr: "service_name",
		},
		{
			name:    "missing transport kind",
			mutate:  func(cfg *Config) { cfg.Transport.Kind = "" },
			wantErr: "transport.kind",
		},
		{
			name:    "negative request timeout",
			mutate:  func(cfg *Config) { cfg.Transport.RequestTimeout = -time.Second },
			wantErr: "request_timeout",
		},
		{
			name:    "negative response cap",
			mutate:  func(cfg *Config) { cfg.Transport.MaxResponseBodyBytes = -1 },
			wantErr: "max_response_body_bytes",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q in error, got %v", tc.wantErr, err)
			}
		})
	}
}
