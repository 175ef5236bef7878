package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-entitlements/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestGraphQLAdapter_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"getExternalId":"external-id-123"}}`))
	}))
	defer server.Close()

	adapter := NewGraphQLAdapter(server.URL, nil, server.Client())
	adapter.MaxResponseBodyBytes = 4

	_, err := adapter.Query(context.Background(), core.GraphQLRequest{Document: "query GetExternalId { getExternalId }"})
	if err == nil {
		t.Fatalf("expected response body limit error")
	}
	if !strings.Contains(err.Error(), "response body exceeds limit of 4 bytes") {
		t.Fatalf("unexpected error: %v", err)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.EntitlementsErrorFailed {
		t.Fatalf("expected %q text code, got %q", core.EntitlementsErrorFailed, rich.TextCode)
	}
	if rich.Code != http.StatusBadGateway {
		t.Fatalf("expected %d code, got %d", http.StatusBadGateway, rich.Code)
	}
}

func TestUnconfiguredAdapter_RefusesWithClassifiedError(t *testing.T) {
	adapter := NewUnconfiguredAdapter("set transport.endpoint")

	_, err := adapter.Query(context.Background(), core.GraphQLRequest{OperationName: "GetEntitlements"})
	if err == nil {
		t.Fatalf("expected refusal error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.EntitlementsErrorFailed {
		t.Fatalf("expected %q text code, got %q", core.EntitlementsErrorFailed, rich.TextCode)
	}
	if !strings.Contains(rich.Message, "set transport.endpoint") {
		t.Fatalf("expected reason in message, got %q", rich.Message)
	}

	if _, err := adapter.Mutate(context.Background(), core.GraphQLRequest{}); err == nil {
		t.Fatalf("expected mutation refusal error")
	}
}

func TestGraphQLAdapter_NilReturnsRichError(t *testing.T) {
	var adapter *GraphQLAdapter
	_, err := adapter.Query(context.Background(), core.GraphQLRequest{})
	if err == nil {
		t.Fatalf("expected nil adapter error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}
