package core

// Operation names sent alongside each document so the endpoint can attribute
// requests in its logs.
const (
	operationGetEntitlements            = "GetEntitlements"
	operationRedeemEntitlements         = "RedeemEntitlements"
	operationGetEntitlementsConsumption = "GetEntitlementsConsumption"
	operationGetExternalID              = "GetExternalId"
	operationConsumeBooleanEntitlements = "ConsumeBooleanEntitlements"
)

const getEntitlementsDocument = `query GetEntitlements {
  getEntitlements {
    createdAtEpochMs
    updatedAtEpochMs
    version
    name
    description
    entitlements {
      name
      description
      value
    }
  }
}`

const redeemEntitlementsDocument = `mutation RedeemEntitlements {
  redeemEntitlements {
    createdAtEpochMs
    updatedAtEpochMs
    version
    name
    description
    entitlements {
      name
      description
      value
    }
  }
}`

const getEntitlementsConsumptionDocument = `query GetEntitlementsConsumption {
  getEntitlementsConsumption {
    entitlements {
      version
      entitlementsSetName
      entitlements {
        name
        description
        value
      }
    }
    consumption {
      consumer {
        id
        issuer
      }
      name
      value
      consumed
      available
      firstConsumedAtEpochMs
      lastConsumedAtEpochMs
    }
  }
}`

const getExternalIDDocument = `query GetExternalId {
  getExternalId
}`

const consumeBooleanEntitlementsDocument = `mutation ConsumeBooleanEntitlements($entitlementNames: [String!]!) {
  consumeBooleanEntitlements(entitlementNames: $entitlementNames)
}`

// EntitlementRecord is the wire shape of a single entitlement.
type EntitlementRecord struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Value       int64   `json:"value"`
}

// EntitlementsSetRecord is the wire shape returned by the getEntitlements
// query and redeemEntitlements mutation. Timestamps are epoch milliseconds.
type EntitlementsSetRecord struct {
	CreatedAtEpochMs float64             `json:"createdAtEpochMs"`
	UpdatedAtEpochMs float64             `json:"updatedAtEpochMs"`
	Version          float64             `json:"version"`
	Name             string              `json:"name"`
	Description      *string             `json:"description,omitempty"`
	Entitlements     []EntitlementRecord `json:"entitlements"`
}

// UserEntitlementsRecord is the wire shape of the user's active entitlements
// inside the consumption response.
type UserEntitlementsRecord struct {
	Version             float64             `json:"version"`
	EntitlementsSetName *string             `json:"entitlementsSetName,omitempty"`
	Entitlements        []EntitlementRecord `json:"entitlements"`
}

type EntitlementConsumerRecord struct {
	ID     string `json:"id"`
	Issuer string `json:"issuer"`
}

type EntitlementConsumptionRecord struct {
	Consumer               *EntitlementConsumerRecord `json:"consumer,omitempty"`
	Name                   string                     `json:"name"`
	Value                  int64                      `json:"value"`
	Consumed               int64                      `json:"consumed"`
	Available              int64                      `json:"available"`
	FirstConsumedAtEpochMs *float64                   `json:"firstConsumedAtEpochMs,omitempty"`
	LastConsumedAtEpochMs  *float64                   `json:"lastConsumedAtEpochMs,omitempty"`
}

// EntitlementsConsumptionRecord is the wire shape returned by the
// getEntitlementsConsumption query.
type EntitlementsConsumptionRecord struct {
	Entitlements UserEntitlementsRecord         `json:"entitlements"`
	Consumption  []EntitlementConsumptionRecord `json:"consumption"`
}

type getEntitlementsData struct {
	GetEntitlements *EntitlementsSetRecord `json:"getEntitlements"`
}

type redeemEntitlementsData struct {
	RedeemEntitlements *EntitlementsSetRecord `json:"redeemEntitlements"`
}

type getEntitlementsConsumptionData struct {
	GetEntitlementsConsumption *EntitlementsConsumptionRecord `json:"getEntitlementsConsumption"`
}

type getExternalIDData struct {
	GetExternalID *string `json:"getExternalId"`
}

type consumeBooleanEntitlementsData struct {
	ConsumeBooleanEntitlements *bool `json:"consumeBooleanEntitlements"`
}
