package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-entitlements/core"
	goerrors "github.com/goliatone/go-errors"
)

const KindNoop = "noop"

// UnconfiguredAdapter refuses every operation with a classified request
// failure. It stands in for a real transport when no endpoint is configured,
// so callers get a taxonomy error instead of a nil dereference.
type UnconfiguredAdapter struct {
	reason string
}

func NewUnconfiguredAdapter(reason string) *UnconfiguredAdapter {
	return &UnconfiguredAdapter{reason: strings.TrimSpace(reason)}
}

func (*UnconfiguredAdapter) Kind() string {
	return KindNoop
}

func (a *UnconfiguredAdapter) Query(ctx context.Context, req core.GraphQLRequest) (core.GraphQLResponse, error) {
	return core.GraphQLResponse{}, a.refuse(req)
}

func (a *UnconfiguredAdapter) Mutate(ctx context.Context, req core.GraphQLRequest) (core.GraphQLResponse, error) {
	return core.GraphQLResponse{}, a.refuse(req)
}

func (a *UnconfiguredAdapter) refuse(req core.GraphQLRequest) error {
	message := "transport: entitlements endpoint is not configured"
	if a != nil && a.reason != "" {
		message = message + ": " + a.reason
	}
	return transportError(
		message,
		goerrors.CategoryExternal,
		http.StatusBadGateway,
		map[string]any{"adapter": KindNoop, "operation": req.OperationName},
	)
}

var _ core.Transport = (*UnconfiguredAdapter)(nil)
