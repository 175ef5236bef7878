package query

import (
	"context"

	"github.com/goliatone/go-entitlements/core"
)

// EntitlementsReader is the slice of the entitlements client the query
// handlers depend on. *core.Client satisfies it.
type EntitlementsReader interface {
	GetEntitlements(ctx context.Context) (*core.EntitlementsSet, error)
	GetEntitlementsConsumption(ctx context.Context) (core.EntitlementsConsumption, error)
	GetExternalID(ctx context.Context) (string, error)
}

type GetEntitlementsQuery struct {
	reader EntitlementsReader
}

func NewGetEntitlementsQuery(reader EntitlementsReader) *GetEntitlementsQuery {
	return &GetEntitlementsQuery{reader: reader}
}

func (q *GetEntitlementsQuery) Query(ctx context.Context, msg GetEntitlementsMessage) (*core.EntitlementsSet, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: entitlements reader is required")
	}
	return q.reader.GetEntitlements(ctx)
}

type GetEntitlementsConsumptionQuery struct {
	reader EntitlementsReader
}

func NewGetEntitlementsConsumptionQuery(reader EntitlementsReader) *GetEntitlementsConsumptionQuery {
	return &GetEntitlementsConsumptionQuery{reader: reader}
}

func (q *GetEntitlementsConsumptionQuery) Query(
	ctx context.Context,
	msg GetEntitlementsConsumptionMessage,
) (core.EntitlementsConsumption, error) {
	if q == nil || q.reader == nil {
		return core.EntitlementsConsumption{}, queryDependencyError("query: entitlements reader is required")
	}
	return q.reader.GetEntitlementsConsumption(ctx)
}

type GetExternalIDQuery struct {
	reader EntitlementsReader
}

func NewGetExternalIDQuery(reader EntitlementsReader) *GetExternalIDQuery {
	return &GetExternalIDQuery{reader: reader}
}

func (q *GetExternalIDQuery) Query(ctx context.Context, msg GetExternalIDMessage) (string, error) {
	if q == nil || q.reader == nil {
		return "", queryDependencyError("query: entitlements reader is required")
	}
	return q.reader.GetExternalID(ctx)
}
