package entitlements

import "github.com/goliatone/go-entitlements/core"

type Config = core.Config

type TransportConfig = core.TransportConfig

type Option = core.Option

type Client = core.Client

type ClientDependencies = core.ClientDependencies

type SessionProvider = core.SessionProvider
type Transport = core.Transport
type MetricsRecorder = core.MetricsRecorder

type GraphQLRequest = core.GraphQLRequest
type GraphQLResponse = core.GraphQLResponse
type GraphQLError = core.GraphQLError

type Entitlement = core.Entitlement
type EntitlementsSet = core.EntitlementsSet
type UserEntitlements = core.UserEntitlements
type EntitlementConsumer = core.EntitlementConsumer
type EntitlementConsumption = core.EntitlementConsumption
type EntitlementsConsumption = core.EntitlementsConsumption

type NotAuthorizedError = core.NotAuthorizedError

var ErrNotAuthorized = core.ErrNotAuthorized

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithSession         = core.WithSession
	WithTransport       = core.WithTransport
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// SplitVersion decomposes a composite entitlements version double into its
// user entitlements and entitlements-set components.
func SplitVersion(version float64) (int64, int64, error) {
	return core.SplitVersion(version)
}
