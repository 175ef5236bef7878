package core

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Client executes entitlements operations against a remote service. It keeps
// no per-call state: every operation is a single round trip whose outcome is
// either a domain value or one error from the entitlements taxonomy, with
// cancellation signals passed through verbatim.
type Client struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	session         SessionProvider
	transport       Transport
}

type ClientDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Session         SessionProvider
	Transport       Transport
}

func NewClient(cfg Config, options ...Option) (*Client, error) {
	builder := defaultClientBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("entitlements", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("entitlements"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	if builder.session == nil {
		return nil, newEntitlementsError(
			"core: session provider is required",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}
	if builder.transport == nil {
		return nil, newEntitlementsError(
			"core: transport is required",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(err)
	}

	return &Client{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		session:         builder.session,
		transport:       builder.transport,
	}, nil
}

func mapBuildError(err error) error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureEntitlementsErrorEnvelope(rich)
	}
	return wrapEntitlementsError(
		err,
		goerrors.CategoryBadInput,
		"core: invalid client configuration",
		EntitlementsErrorInvalidArgument,
	)
}

func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Client) Dependencies() ClientDependencies {
	if c == nil {
		return ClientDependencies{}
	}
	return ClientDependencies{
		Logger:          c.logger,
		LoggerProvider:  c.loggerProvider,
		MetricsRecorder: c.metricsRecorder,
		ErrorFactory:    c.errorFactory,
		ErrorMapper:     c.errorMapper,
		ConfigProvider:  c.configProvider,
		OptionsResolver: c.optionsResolver,
		Session:         c.session,
		Transport:       c.transport,
	}
}

// GetEntitlements returns the entitlements set currently active for the
// user, or nil when the service reports none without error.
func (c *Client) GetEntitlements(ctx context.Context) (set *EntitlementsSet, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		c.observeOperation(ctx, startedAt, "get_entitlements", err, fields)
	}()

	if err = c.requireSignedIn(ctx); err != nil {
		return nil, err
	}

	res, err := c.transport.Query(ctx, GraphQLRequest{
		Document:      getEntitlementsDocument,
		OperationName: operationGetEntitlements,
	})
	if err != nil {
		err = c.mapError(err)
		return nil, err
	}
	if err = c.serviceError(res); err != nil {
		return nil, err
	}

	var payload getEntitlementsData
	if err = decodeOperationData(res, &payload); err != nil {
		return nil, err
	}
	if payload.GetEntitlements == nil {
		fields["found"] = false
		return nil, nil
	}

	entitlementsSet := EntitlementsSetFromRecord(*payload.GetEntitlements)
	fields["found"] = true
	fields["set_name"] = entitlementsSet.Name
	fields["entitlement_count"] = len(entitlementsSet.Entitlements)
	return &entitlementsSet, nil
}

// RedeemEntitlements claims the entitlements the user's identity attributes
// entitle them to and returns the resulting set.
func (c *Client) RedeemEntitlements(ctx context.Context) (set EntitlementsSet, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		c.observeOperation(ctx, startedAt, "redeem_entitlements", err, fields)
	}()

	if err = c.requireSignedIn(ctx); err != nil {
		return EntitlementsSet{}, err
	}

	res, err := c.transport.Mutate(ctx, GraphQLRequest{
		Document:      redeemEntitlementsDocument,
		OperationName: operationRedeemEntitlements,
	})
	if err != nil {
		err = c.mapError(err)
		return EntitlementsSet{}, err
	}
	if err = c.serviceError(res); err != nil {
		return EntitlementsSet{}, err
	}

	var payload redeemEntitlementsData
	if err = decodeOperationData(res, &payload); err != nil {
		return EntitlementsSet{}, err
	}
	if payload.RedeemEntitlements == nil {
		err = missingEntitlementsDataError()
		return EntitlementsSet{}, err
	}

	entitlementsSet := EntitlementsSetFromRecord(*payload.RedeemEntitlements)
	fields["set_name"] = entitlementsSet.Name
	fields["entitlement_count"] = len(entitlementsSet.Entitlements)
	return entitlementsSet, nil
}

// GetEntitlementsConsumption returns the user's active entitlements together
// with per-entitlement usage.
func (c *Client) GetEntitlementsConsumption(ctx context.Context) (consumption EntitlementsConsumption, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		c.observeOperation(ctx, startedAt, "get_entitlements_consumption", err, fields)
	}()

	if err = c.requireSignedIn(ctx); err != nil {
		return EntitlementsConsumption{}, err
	}

	res, err := c.transport.Query(ctx, GraphQLRequest{
		Document:      getEntitlementsConsumptionDocument,
		OperationName: operationGetEntitlementsConsumption,
	})
	if err != nil {
		err = c.mapError(err)
		return EntitlementsConsumption{}, err
	}
	if err = c.serviceError(res); err != nil {
		return EntitlementsConsumption{}, err
	}

	var payload getEntitlementsConsumptionData
	if err = decodeOperationData(res, &payload); err != nil {
		return EntitlementsConsumption{}, err
	}
	if payload.GetEntitlementsConsumption == nil {
		err = missingEntitlementsDataError()
		return EntitlementsConsumption{}, err
	}

	consumption = EntitlementsConsumptionFromRecord(*payload.GetEntitlementsConsumption)
	fields["consumption_count"] = len(consumption.Consumption)
	return consumption, nil
}

// GetExternalID returns the identifier correlating the user with the
// external identity mapping used by the entitlements backend.
func (c *Client) GetExternalID(ctx context.Context) (externalID string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		c.observeOperation(ctx, startedAt, "get_external_id", err, fields)
	}()

	if err = c.requireSignedIn(ctx); err != nil {
		return "", err
	}

	res, err := c.transport.Query(ctx, GraphQLRequest{
		Document:      getExternalIDDocument,
		OperationName: operationGetExternalID,
	})
	if err != nil {
		err = c.mapError(err)
		return "", err
	}
	if err = c.serviceError(res); err != nil {
		return "", err
	}

	var payload getExternalIDData
	if err = decodeOperationData(res, &payload); err != nil {
		return "", err
	}
	if payload.GetExternalID == nil {
		err = missingEntitlementsDataError()
		return "", err
	}
	return *payload.GetExternalID, nil
}

// ConsumeBooleanEntitlements marks the named boolean entitlements as
// consumed. The caller must be signed in; the transport is never invoked
// otherwise.
func (c *Client) ConsumeBooleanEntitlements(ctx context.Context, entitlementNames []string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"entitlement_count": len(entitlementNames),
	}
	defer func() {
		c.observeOperation(ctx, startedAt, "consume_boolean_entitlements", err, fields)
	}()

	if err = c.requireSignedIn(ctx); err != nil {
		return err
	}
	if err = validateEntitlementNames(entitlementNames); err != nil {
		return err
	}

	res, err := c.transport.Mutate(ctx, GraphQLRequest{
		Document:      consumeBooleanEntitlementsDocument,
		OperationName: operationConsumeBooleanEntitlements,
		Variables: map[string]any{
			"entitlementNames": append([]string(nil), entitlementNames...),
		},
	})
	if err != nil {
		err = c.mapError(err)
		return err
	}
	if err = c.serviceError(res); err != nil {
		return err
	}

	var payload consumeBooleanEntitlementsData
	if err = decodeOperationData(res, &payload); err != nil {
		return err
	}
	if payload.ConsumeBooleanEntitlements == nil {
		err = missingEntitlementsDataError()
		return err
	}
	return nil
}

func (c *Client) requireSignedIn(ctx context.Context) error {
	if c == nil || c.session == nil || !c.session.IsSignedIn(ctx) {
		return newEntitlementsError(
			"core: user is not signed in",
			goerrors.CategoryAuth,
			EntitlementsErrorNotSignedIn,
		)
	}
	return nil
}

// serviceError classifies the first error reported in a response envelope.
// Response errors take precedence over any data carried alongside them.
func (c *Client) serviceError(res GraphQLResponse) error {
	if !res.HasErrors() {
		return nil
	}
	return classifyGraphQLError(res.Errors[0])
}

func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}
	if c == nil || c.errorMapper == nil {
		return err
	}
	mapped := c.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func decodeOperationData(res GraphQLResponse, target any) error {
	if !res.HasData() {
		return nil
	}
	if err := json.Unmarshal(res.Data, target); err != nil {
		return wrapEntitlementsError(
			err,
			goerrors.CategoryExternal,
			"core: decode operation data",
			EntitlementsErrorFailed,
		)
	}
	return nil
}

func missingEntitlementsDataError() error {
	return newEntitlementsError(
		"No entitlements returned in response",
		goerrors.CategoryExternal,
		EntitlementsErrorFailed,
	)
}

func validateEntitlementNames(entitlementNames []string) error {
	if len(entitlementNames) == 0 {
		return newEntitlementsError(
			"core: entitlement names are required",
			goerrors.CategoryBadInput,
			EntitlementsErrorInvalidArgument,
		)
	}
	for _, name := range entitlementNames {
		if strings.TrimSpace(name) == "" {
			return newEntitlementsError(
				"core: entitlement names must not be blank",
				goerrors.CategoryBadInput,
				EntitlementsErrorInvalidArgument,
			)
		}
	}
	return nil
}
