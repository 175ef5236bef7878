package entitlements

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-entitlements/transport"
)

// AdapterPack groups transport adapter factories a downstream module ships
// under one name, keyed by adapter kind.
type AdapterPack struct {
	Name      string
	Factories map[string]transport.AdapterFactory
}

type CommandQueryBundleFactory func(service CommandQueryService) (any, error)

// ExtensionHooks collects downstream registrations so host applications can
// apply them in one place: transport adapter packs into a registry and
// command/query bundles over a built client.
type ExtensionHooks struct {
	mu sync.RWMutex

	adapterPacks map[string]AdapterPack
	bundles      map[string]CommandQueryBundleFactory
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{
		adapterPacks: map[string]AdapterPack{},
		bundles:      map[string]CommandQueryBundleFactory{},
	}
}

func (h *ExtensionHooks) RegisterAdapterPack(pack AdapterPack) error {
	if h == nil {
		return fmt.Errorf("entitlements: extension hooks are nil")
	}
	name := strings.TrimSpace(pack.Name)
	if name == "" {
		return fmt.Errorf("entitlements: adapter pack name is required")
	}
	if len(pack.Factories) == 0 {
		return fmt.Errorf("entitlements: adapter pack %q has no factories", name)
	}

	normalized := AdapterPack{
		Name:      name,
		Factories: make(map[string]transport.AdapterFactory, len(pack.Factories)),
	}
	for kind, factory := range pack.Factories {
		kind = strings.TrimSpace(strings.ToLower(kind))
		if kind == "" {
			return fmt.Errorf("entitlements: adapter pack %q has a factory without a kind", name)
		}
		if factory == nil {
			return fmt.Errorf("entitlements: adapter pack %q factory for %q is nil", name, kind)
		}
		normalized.Factories[kind] = factory
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.adapterPacks[name]; exists {
		return fmt.Errorf("entitlements: adapter pack %q already registered", name)
	}
	h.adapterPacks[name] = normalized
	return nil
}

func (h *ExtensionHooks) RegisterCommandQueryBundle(
	name string,
	factory CommandQueryBundleFactory,
) error {
	if h == nil {
		return fmt.Errorf("entitlements: extension hooks are nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("entitlements: command/query bundle name is required")
	}
	if factory == nil {
		return fmt.Errorf("entitlements: command/query bundle %q factory is required", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.bundles[name]; exists {
		return fmt.Errorf("entitlements: command/query bundle %q already registered", name)
	}
	h.bundles[name] = factory
	return nil
}

// ApplyAdapterPacks registers every pack factory with the registry in
// deterministic pack/kind order.
func (h *ExtensionHooks) ApplyAdapterPacks(registry *transport.Registry) error {
	if h == nil {
		return nil
	}
	if registry == nil {
		return fmt.Errorf("entitlements: transport registry is required")
	}

	for _, pack := range h.AdapterPacks() {
		kinds := make([]string, 0, len(pack.Factories))
		for kind := range pack.Factories {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			if err := registry.RegisterFactory(kind, pack.Factories[kind]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *ExtensionHooks) BuildCommandQueryBundles(
	service CommandQueryService,
) (map[string]any, error) {
	if h == nil {
		return map[string]any{}, nil
	}
	if service == nil {
		return nil, fmt.Errorf("entitlements: command/query service is required")
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	factories := make(map[string]CommandQueryBundleFactory, len(h.bundles))
	for name, factory := range h.bundles {
		factories[name] = factory
	}
	h.mu.RUnlock()

	result := make(map[string]any, len(names))
	for _, name := range names {
		bundle, err := factories[name](service)
		if err != nil {
			return nil, err
		}
		result[name] = bundle
	}
	return result, nil
}

func (h *ExtensionHooks) AdapterPacks() []AdapterPack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.adapterPacks))
	for name := range h.adapterPacks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]AdapterPack, 0, len(names))
	for _, name := range names {
		pack := h.adapterPacks[name]
		factories := make(map[string]transport.AdapterFactory, len(pack.Factories))
		for kind, factory := range pack.Factories {
			factories[kind] = factory
		}
		out = append(out, AdapterPack{Name: pack.Name, Factories: factories})
	}
	return out
}

func (h *ExtensionHooks) BundleNames() []string {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.bundles))
	for name := range h.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
