package entitlements

import (
	"fmt"

	entitlementscommand "github.com/goliatone/go-entitlements/command"
	entitlementsquery "github.com/goliatone/go-entitlements/query"
)

// CommandQueryService is the combined surface the facade wraps. *core.Client
// satisfies it.
type CommandQueryService interface {
	entitlementscommand.MutatingService
	entitlementsquery.EntitlementsReader
}

type Commands struct {
	Redeem         *entitlementscommand.RedeemEntitlementsCommand
	ConsumeBoolean *entitlementscommand.ConsumeBooleanEntitlementsCommand
}

type Queries struct {
	Entitlements *entitlementsquery.GetEntitlementsQuery
	Consumption  *entitlementsquery.GetEntitlementsConsumptionQuery
	ExternalID   *entitlementsquery.GetExternalIDQuery
}

// Facade bundles the command and query handlers over one service so callers
// can register them with a dispatcher or invoke them directly.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("entitlements: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Redeem:         entitlementscommand.NewRedeemEntitlementsCommand(service),
		ConsumeBoolean: entitlementscommand.NewConsumeBooleanEntitlementsCommand(service),
	}
	facade.queries = Queries{
		Entitlements: entitlementsquery.NewGetEntitlementsQuery(service),
		Consumption:  entitlementsquery.NewGetEntitlementsConsumptionQuery(service),
		ExternalID:   entitlementsquery.NewGetExternalIDQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
