package transport

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-entitlements/core"
)

type staticTransport struct {
	kind string
}

func (a staticTransport) Kind() string { return a.kind }

func (a staticTransport) Query(context.Context, core.GraphQLRequest) (core.GraphQLResponse, error) {
	return core.GraphQLResponse{}, nil
}

func (a staticTransport) Mutate(context.Context, core.GraphQLRequest) (core.GraphQLResponse, error) {
	return core.GraphQLResponse{}, nil
}

func TestRegistry_RegisterGetAndKinds(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(staticTransport{kind: "graphql"}); err != nil {
		t.Fatalf("register graphql adapter: %v", err)
	}
	if err := registry.Register(staticTransport{kind: "memory"}); err != nil {
		t.Fatalf("register memory adapter: %v", err)
	}
	if err := registry.RegisterFactory("noop", noopAdapterFactory); err != nil {
		t.Fatalf("register noop factory: %v", err)
	}

	if _, ok := registry.Get("memory"); !ok {
		t.Fatalf("expected memory adapter to be registered")
	}
	if got := registry.Kinds(); !reflect.DeepEqual(got, []string{"graphql", "memory", "noop"}) {
		t.Fatalf("expected deterministic sorted kinds, got %v", got)
	}

	if err := registry.Register(staticTransport{kind: "memory"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.RegisterFactory("noop", noopAdapterFactory); err == nil {
		t.Fatalf("expected duplicate factory registration error")
	}
}

func TestRegistry_BuildPrefersRegisteredInstance(t *testing.T) {
	registry := NewRegistry()
	instance := staticTransport{kind: "graphql"}
	if err := registry.Register(instance); err != nil {
		t.Fatalf("register adapter: %v", err)
	}
	if err := registry.RegisterFactory("graphql", graphQLAdapterFactory); err != nil {
		t.Fatalf("register factory: %v", err)
	}

	built, err := registry.Build("graphql", FactoryConfig{Endpoint: "https://entitlements.example.com/graphql"})
	if err != nil {
		t.Fatalf("build adapter: %v", err)
	}
	if built != instance {
		t.Fatalf("expected registered instance to win, got %T", built)
	}
}

func TestRegistry_BuildUnknownKind(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Build("carrier-pigeon", FactoryConfig{}); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestNewDefaultRegistry_BuildsGraphQLAdapter(t *testing.T) {
	registry := NewDefaultRegistry()

	built, err := registry.Build("graphql", FactoryConfig{
		Endpoint:             "https://entitlements.example.com/graphql",
		Session:              staticSession{signedIn: true, token: "access-token"},
		RequestTimeout:       5 * time.Second,
		MaxResponseBodyBytes: 2048,
		Headers:              map[string]string{"X-Client": "entitlements"},
	})
	if err != nil {
		t.Fatalf("build graphql adapter: %v", err)
	}
	adapter, ok := built.(*GraphQLAdapter)
	if !ok {
		t.Fatalf("expected graphql adapter, got %T", built)
	}
	if adapter.Endpoint != "https://entitlements.example.com/graphql" {
		t.Fatalf("expected endpoint carried over, got %q", adapter.Endpoint)
	}
	if adapter.RequestTimeout != 5*time.Second {
		t.Fatalf("expected request timeout carried over, got %v", adapter.RequestTimeout)
	}
	if adapter.MaxResponseBodyBytes != 2048 {
		t.Fatalf("expected response limit carried over, got %d", adapter.MaxResponseBodyBytes)
	}
	if adapter.DefaultHeaders["X-Client"] != "entitlements" {
		t.Fatalf("expected default headers carried over, got %v", adapter.DefaultHeaders)
	}

	if _, err := registry.Build("graphql", FactoryConfig{}); err == nil {
		t.Fatalf("expected endpoint requirement error")
	}
}

func TestNewDefaultRegistry_BuildsNoopAdapter(t *testing.T) {
	registry := NewDefaultRegistry()
	built, err := registry.Build("noop", FactoryConfig{})
	if err != nil {
		t.Fatalf("build noop adapter: %v", err)
	}
	if built.Kind() != KindNoop {
		t.Fatalf("expected noop kind, got %q", built.Kind())
	}
	if _, err := built.Query(context.Background(), core.GraphQLRequest{}); err == nil {
		t.Fatalf("expected noop adapter to refuse operations")
	}
}
