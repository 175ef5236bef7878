package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-entitlements/core"
)

// MutatingService is the slice of the entitlements client the command
// handlers depend on. *core.Client satisfies it.
type MutatingService interface {
	RedeemEntitlements(ctx context.Context) (core.EntitlementsSet, error)
	ConsumeBooleanEntitlements(ctx context.Context, entitlementNames []string) error
}

type RedeemEntitlementsCommand struct {
	service MutatingService
}

func NewRedeemEntitlementsCommand(service MutatingService) *RedeemEntitlementsCommand {
	return &RedeemEntitlementsCommand{service: service}
}

func (c *RedeemEntitlementsCommand) Execute(ctx context.Context, msg RedeemEntitlementsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: redeem service is required")
	}
	out, err := c.service.RedeemEntitlements(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ConsumeBooleanEntitlementsCommand struct {
	service MutatingService
}

func NewConsumeBooleanEntitlementsCommand(service MutatingService) *ConsumeBooleanEntitlementsCommand {
	return &ConsumeBooleanEntitlementsCommand{service: service}
}

func (c *ConsumeBooleanEntitlementsCommand) Execute(ctx context.Context, msg ConsumeBooleanEntitlementsMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: consume service is required")
	}
	return c.service.ConsumeBooleanEntitlements(ctx, msg.EntitlementNames)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
