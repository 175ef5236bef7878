package query

const (
	TypeGetEntitlements            = "entitlements.query.entitlements.get"
	TypeGetEntitlementsConsumption = "entitlements.query.consumption.get"
	TypeGetExternalID              = "entitlements.query.external_id.get"
)

// The read operations resolve everything from the signed-in session, so the
// messages carry no payload.

type GetEntitlementsMessage struct{}

func (GetEntitlementsMessage) Type() string { return TypeGetEntitlements }

func (GetEntitlementsMessage) Validate() error { return nil }

type GetEntitlementsConsumptionMessage struct{}

func (GetEntitlementsConsumptionMessage) Type() string { return TypeGetEntitlementsConsumption }

func (GetEntitlementsConsumptionMessage) Validate() error { return nil }

type GetExternalIDMessage struct{}

func (GetExternalIDMessage) Type() string { return TypeGetExternalID }

func (GetExternalIDMessage) Validate() error { return nil }
