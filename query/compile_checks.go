package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-entitlements/core"
)

var (
	_ gocmd.Querier[GetEntitlementsMessage, *core.EntitlementsSet]                   = (*GetEntitlementsQuery)(nil)
	_ gocmd.Querier[GetEntitlementsConsumptionMessage, core.EntitlementsConsumption] = (*GetEntitlementsConsumptionQuery)(nil)
	_ gocmd.Querier[GetExternalIDMessage, string]                                    = (*GetExternalIDQuery)(nil)
)
