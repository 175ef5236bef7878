package transport

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-entitlements/core"
)

// Adapter is a transport with a registry kind.
type Adapter interface {
	core.Transport
	Kind() string
}

// FactoryConfig carries everything an adapter factory may need. Factories
// ignore the fields that do not apply to their kind.
type FactoryConfig struct {
	Endpoint             string
	Session              core.SessionProvider
	HTTPClient           HTTPDoer
	RequestTimeout       time.Duration
	MaxResponseBodyBytes int64
	Headers              map[string]string
}

type AdapterFactory func(cfg FactoryConfig) (Adapter, error)

type Registry struct {
	mu        sync.RWMutex
	adapters  map[string]Adapter
	factories map[string]AdapterFactory
}

func NewRegistry() *Registry {
	return &Registry{
		adapters:  map[string]Adapter{},
		factories: map[string]AdapterFactory{},
	}
}

func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.RegisterFactory(KindGraphQL, graphQLAdapterFactory)
	_ = registry.RegisterFactory(KindNoop, noopAdapterFactory)
	return registry
}

func (r *Registry) Register(adapter Adapter) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	if adapter == nil {
		return fmt.Errorf("transport: adapter is nil")
	}
	kind := normalizeKind(adapter.Kind())
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("transport: adapter kind %q already registered", kind)
	}
	r.adapters[kind] = adapter
	return nil
}

func (r *Registry) RegisterFactory(kind string, factory AdapterFactory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return fmt.Errorf("transport: adapter kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: adapter factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("transport: adapter factory kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

// Build returns the registered adapter for kind, or constructs one through
// the kind's factory. Registered instances win over factories.
func (r *Registry) Build(kind string, cfg FactoryConfig) (Adapter, error) {
	if r == nil {
		return nil, fmt.Errorf("transport: registry is nil")
	}
	kind = normalizeKind(kind)
	if kind == "" {
		return nil, fmt.Errorf("transport: adapter kind is required")
	}

	r.mu.RLock()
	adapter, ok := r.adapters[kind]
	factory := r.factories[kind]
	r.mu.RUnlock()
	if ok {
		return adapter, nil
	}
	if factory == nil {
		return nil, fmt.Errorf("transport: adapter kind %q not registered", kind)
	}
	built, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if built == nil {
		return nil, fmt.Errorf("transport: factory for %q returned nil adapter", kind)
	}
	return built, nil
}

func (r *Registry) Get(kind string) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	kind = normalizeKind(kind)
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[kind]
	return adapter, ok
}

func (r *Registry) Kinds() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.adapters)+len(r.factories))
	for kind := range r.adapters {
		kinds = append(kinds, kind)
	}
	for kind := range r.factories {
		if _, exists := r.adapters[kind]; exists {
			continue
		}
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}

func graphQLAdapterFactory(cfg FactoryConfig) (Adapter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("transport: graphql endpoint is required")
	}
	adapter := NewGraphQLAdapter(endpoint, cfg.Session, cfg.HTTPClient)
	if cfg.RequestTimeout > 0 {
		adapter.RequestTimeout = cfg.RequestTimeout
	}
	if cfg.MaxResponseBodyBytes > 0 {
		adapter.MaxResponseBodyBytes = cfg.MaxResponseBodyBytes
	}
	for key, value := range cfg.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		adapter.DefaultHeaders[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return adapter, nil
}

func noopAdapterFactory(FactoryConfig) (Adapter, error) {
	return NewUnconfiguredAdapter(""), nil
}
