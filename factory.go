package entitlements

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-entitlements/core"
	"github.com/goliatone/go-entitlements/transport"
)

// NewClient builds an entitlements client. The session provider is mandatory;
// the transport adapter is built from cfg.Transport unless the caller injects
// one via WithTransport, which always wins.
func NewClient(cfg Config, session SessionProvider, opts ...Option) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("entitlements: session provider is required")
	}

	options := make([]Option, 0, len(opts)+2)
	options = append(options, core.WithSession(session))
	adapter, err := defaultTransport(cfg, session)
	if err != nil {
		return nil, err
	}
	if adapter != nil {
		options = append(options, core.WithTransport(adapter))
	}
	options = append(options, opts...)

	return core.NewClient(cfg, options...)
}

// New builds a client per NewClient and wraps it in the command/query facade.
func New(cfg Config, session SessionProvider, opts ...Option) (*Facade, error) {
	client, err := NewClient(cfg, session, opts...)
	if err != nil {
		return nil, err
	}
	return NewFacade(client)
}

func defaultTransport(cfg Config, session SessionProvider) (core.Transport, error) {
	kind := strings.TrimSpace(cfg.Transport.Kind)
	if kind == "" {
		kind = transport.KindGraphQL
	}
	if strings.EqualFold(kind, transport.KindGraphQL) && strings.TrimSpace(cfg.Transport.Endpoint) == "" {
		// No endpoint to build the default adapter from; the caller has to
		// inject a transport explicitly.
		return nil, nil
	}
	return transport.NewDefaultRegistry().Build(kind, transport.FactoryConfig{
		Endpoint:             cfg.Transport.Endpoint,
		Session:              session,
		RequestTimeout:       cfg.Transport.RequestTimeout,
		MaxResponseBodyBytes: cfg.Transport.MaxResponseBodyBytes,
	})
}
