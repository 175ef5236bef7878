package core

import "time"

// EntitlementFromRecord maps a wire entitlement verbatim.
func EntitlementFromRecord(record EntitlementRecord) Entitlement {
	entitlement := Entitlement{
		Name:  record.Name,
		Value: record.Value,
	}
	if record.Description != nil {
		entitlement.Description = *record.Description
	}
	return entitlement
}

// EntitlementListFromRecords maps wire entitlements preserving order and
// duplicates. The consumption path reports entitlements this way.
func EntitlementListFromRecords(records []EntitlementRecord) []Entitlement {
	out := make([]Entitlement, 0, len(records))
	for _, record := range records {
		out = append(out, EntitlementFromRecord(record))
	}
	return out
}

// EntitlementSetFromRecords maps wire entitlements into a set unique by
// value equality, keeping first-seen order. The get and redeem paths report
// entitlements this way.
func EntitlementSetFromRecords(records []EntitlementRecord) []Entitlement {
	out := make([]Entitlement, 0, len(records))
	seen := make(map[Entitlement]struct{}, len(records))
	for _, record := range records {
		entitlement := EntitlementFromRecord(record)
		if _, ok := seen[entitlement]; ok {
			continue
		}
		seen[entitlement] = struct{}{}
		out = append(out, entitlement)
	}
	return out
}

// EntitlementsSetFromRecord maps the getEntitlements/redeemEntitlements wire
// shape into the domain aggregate, converting epoch-millisecond timestamps.
func EntitlementsSetFromRecord(record EntitlementsSetRecord) EntitlementsSet {
	set := EntitlementsSet{
		Name:         record.Name,
		Entitlements: EntitlementSetFromRecords(record.Entitlements),
		Version:      record.Version,
		CreatedAt:    timeFromEpochMs(record.CreatedAtEpochMs),
		UpdatedAt:    timeFromEpochMs(record.UpdatedAtEpochMs),
	}
	if record.Description != nil {
		set.Description = *record.Description
	}
	return set
}

// UserEntitlementsFromRecord maps the user's active entitlements from the
// consumption response.
func UserEntitlementsFromRecord(record UserEntitlementsRecord) UserEntitlements {
	user := UserEntitlements{
		Version:      record.Version,
		Entitlements: EntitlementListFromRecords(record.Entitlements),
	}
	if record.EntitlementsSetName != nil {
		user.EntitlementsSetName = *record.EntitlementsSetName
	}
	return user
}

// EntitlementsConsumptionFromRecord maps the consumption aggregate.
func EntitlementsConsumptionFromRecord(record EntitlementsConsumptionRecord) EntitlementsConsumption {
	consumption := make([]EntitlementConsumption, 0, len(record.Consumption))
	for _, item := range record.Consumption {
		consumption = append(consumption, entitlementConsumptionFromRecord(item))
	}
	return EntitlementsConsumption{
		Entitlements: UserEntitlementsFromRecord(record.Entitlements),
		Consumption:  consumption,
	}
}

func entitlementConsumptionFromRecord(record EntitlementConsumptionRecord) EntitlementConsumption {
	consumption := EntitlementConsumption{
		Name:            record.Name,
		Value:           record.Value,
		Consumed:        record.Consumed,
		Available:       record.Available,
		FirstConsumedAt: timePtrFromEpochMs(record.FirstConsumedAtEpochMs),
		LastConsumedAt:  timePtrFromEpochMs(record.LastConsumedAtEpochMs),
	}
	if record.Consumer != nil {
		consumption.Consumer = &EntitlementConsumer{
			ID:     record.Consumer.ID,
			Issuer: record.Consumer.Issuer,
		}
	}
	return consumption
}

func timeFromEpochMs(epochMs float64) time.Time {
	return time.UnixMilli(int64(epochMs)).UTC()
}

func timePtrFromEpochMs(epochMs *float64) *time.Time {
	if epochMs == nil {
		return nil
	}
	converted := timeFromEpochMs(*epochMs)
	return &converted
}
