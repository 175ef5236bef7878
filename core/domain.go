package core

import "time"

// Entitlement is a single named allowance granted to a user. Instances are
// immutable once constructed from a response.
type Entitlement struct {
	Name        string
	Description string
	Value       int64
}

// EntitlementsSet is a named, versioned bundle of entitlements together with
// its provenance metadata. Entitlements are unique by value equality and keep
// first-seen order.
type EntitlementsSet struct {
	Name         string
	Description  string
	Entitlements []Entitlement
	Version      float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserEntitlements carries the entitlements active for the user along with
// the composite version double: the integer part is the user entitlements
// version, the fractional part encodes the entitlements-set version scaled by
// EntitlementsSetVersionScale. SplitVersion decomposes it.
type UserEntitlements struct {
	Version             float64
	EntitlementsSetName string
	Entitlements        []Entitlement
}

// EntitlementConsumer identifies a sub-user resource consuming an
// entitlement on the user's behalf.
type EntitlementConsumer struct {
	ID     string
	Issuer string
}

// EntitlementConsumption reports tracked usage of one entitlement. Available
// and Consumed always satisfy Available+Consumed == Value as reported by the
// service.
type EntitlementConsumption struct {
	Name            string
	Consumer        *EntitlementConsumer
	Value           int64
	Consumed        int64
	Available       int64
	FirstConsumedAt *time.Time
	LastConsumedAt  *time.Time
}

// EntitlementsConsumption is the aggregate returned by the consumption
// query: the user's current entitlements plus per-entitlement usage.
type EntitlementsConsumption struct {
	Entitlements UserEntitlements
	Consumption  []EntitlementConsumption
}
