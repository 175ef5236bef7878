package entitlements

import (
	"testing"

	"github.com/goliatone/go-entitlements/auth"
	"github.com/goliatone/go-entitlements/core"
	"github.com/goliatone/go-entitlements/transport"
	goerrors "github.com/goliatone/go-errors"
)

func TestNew_RequiresSession(t *testing.T) {
	facade, err := New(DefaultConfig(), nil)
	if err == nil {
		t.Fatalf("expected nil session error")
	}
	if facade != nil {
		t.Fatalf("expected nil facade on error")
	}
	if err.Error() != "entitlements: session provider is required" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestNewClient_RequiresTransportWhenEndpointMissing(t *testing.T) {
	cfg := DefaultConfig()

	client, err := NewClient(cfg, auth.NewStaticTokenSession("token"))
	if err == nil {
		t.Fatalf("expected missing transport error")
	}
	if client != nil {
		t.Fatalf("expected nil client on error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", rich.Category)
	}
	if rich.TextCode != core.EntitlementsErrorInvalidArgument {
		t.Fatalf("expected %q text code, got %q", core.EntitlementsErrorInvalidArgument, rich.TextCode)
	}
}

func TestNewClient_BuildsGraphQLAdapterFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport.Endpoint = "https://api.example.test/graphql"

	client, err := NewClient(cfg, auth.NewStaticTokenSession("token"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	adapter, ok := client.Dependencies().Transport.(*transport.GraphQLAdapter)
	if !ok {
		t.Fatalf("expected graphql adapter, got %T", client.Dependencies().Transport)
	}
	if adapter.Endpoint != cfg.Transport.Endpoint {
		t.Fatalf("expected endpoint %q, got %q", cfg.Transport.Endpoint, adapter.Endpoint)
	}
	if adapter.RequestTimeout != cfg.Transport.RequestTimeout {
		t.Fatalf("expected request timeout %v, got %v", cfg.Transport.RequestTimeout, adapter.RequestTimeout)
	}
}

func TestNewClient_InjectedTransportWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport.Endpoint = "https://api.example.test/graphql"
	injected := transport.NewUnconfiguredAdapter("injected for test")

	client, err := NewClient(cfg, auth.NewStaticTokenSession("token"), WithTransport(injected))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Dependencies().Transport != core.Transport(injected) {
		t.Fatalf("expected injected transport, got %T", client.Dependencies().Transport)
	}
}

func TestNew_BuildsFacadeOverClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport.Kind = "noop"

	facade, err := New(cfg, auth.NewStaticTokenSession("token"))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	client, ok := facade.Service().(*core.Client)
	if !ok {
		t.Fatalf("expected *core.Client service, got %T", facade.Service())
	}
	if _, ok := client.Dependencies().Transport.(*transport.UnconfiguredAdapter); !ok {
		t.Fatalf("expected unconfigured adapter for noop kind, got %T", client.Dependencies().Transport)
	}
	if facade.Commands().Redeem == nil || facade.Queries().Entitlements == nil {
		t.Fatalf("expected facade handlers to be wired")
	}
}
