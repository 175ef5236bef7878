package command

import "strings"

const (
	TypeRedeemEntitlements         = "entitlements.command.redeem"
	TypeConsumeBooleanEntitlements = "entitlements.command.consume_boolean"
)

// RedeemEntitlementsMessage requests redemption for the signed-in user. The
// service resolves the user from the session, so the message carries no
// payload.
type RedeemEntitlementsMessage struct{}

func (RedeemEntitlementsMessage) Type() string { return TypeRedeemEntitlements }

func (RedeemEntitlementsMessage) Validate() error { return nil }

type ConsumeBooleanEntitlementsMessage struct {
	EntitlementNames []string
}

func (ConsumeBooleanEntitlementsMessage) Type() string { return TypeConsumeBooleanEntitlements }

func (m ConsumeBooleanEntitlementsMessage) Validate() error {
	if len(m.EntitlementNames) == 0 {
		return commandValidationError("entitlement_names", "entitlement names are required")
	}
	for _, name := range m.EntitlementNames {
		if strings.TrimSpace(name) == "" {
			return commandValidationError("entitlement_names", "entitlement names must not be blank")
		}
	}
	return nil
}
