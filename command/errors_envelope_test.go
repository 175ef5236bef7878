package command

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-entitlements/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestConsumeBooleanEntitlementsMessage_ValidateReturnsRichError(t *testing.T) {
	err := (ConsumeBooleanEntitlementsMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.EntitlementsErrorInvalidArgument {
		t.Fatalf("expected %q text code, got %q", core.EntitlementsErrorInvalidArgument, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
	validation := rich.AllValidationErrors()
	if len(validation) == 0 {
		t.Fatalf("expected validation errors in envelope")
	}
	if validation[0].Field != "entitlement_names" {
		t.Fatalf("expected entitlement_names validation field, got %q", validation[0].Field)
	}
}

func TestRedeemEntitlementsCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *RedeemEntitlementsCommand
	err := cmd.Execute(context.Background(), RedeemEntitlementsMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.EntitlementsErrorUnknown {
		t.Fatalf("expected %q text code, got %q", core.EntitlementsErrorUnknown, rich.TextCode)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}

func TestConsumeBooleanEntitlementsCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *ConsumeBooleanEntitlementsCommand
	err := cmd.Execute(context.Background(), ConsumeBooleanEntitlementsMessage{
		EntitlementNames: []string{"vault.create"},
	})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
