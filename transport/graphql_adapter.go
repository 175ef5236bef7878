package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-entitlements/core"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const KindGraphQL = "graphql"

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 1 << 20 // 1 MiB

// maxErrorBodySnippet caps how much of an unparseable response body is
// carried into a synthesized error message.
const maxErrorBodySnippet = 256

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GraphQLAdapter executes entitlements operations as GraphQL-over-HTTP POST
// requests. Every request carries the session's bearer token and a request id;
// service-reported errors stay in the response envelope for the caller to
// classify, while protocol failures surface as classified transport errors.
// Cancellation errors are never repackaged.
type GraphQLAdapter struct {
	Endpoint             string
	Client               HTTPDoer
	Session              core.SessionProvider
	DefaultHeaders       map[string]string
	RequestTimeout       time.Duration
	MaxResponseBodyBytes int64
}

func NewGraphQLAdapter(endpoint string, session core.SessionProvider, client HTTPDoer) *GraphQLAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	return &GraphQLAdapter{
		Endpoint:             strings.TrimSpace(endpoint),
		Client:               client,
		Session:              session,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultResponseBodyLimit,
	}
}

func (*GraphQLAdapter) Kind() string {
	return KindGraphQL
}

func (a *GraphQLAdapter) Query(ctx context.Context, req core.GraphQLRequest) (core.GraphQLResponse, error) {
	return a.execute(ctx, req)
}

func (a *GraphQLAdapter) Mutate(ctx context.Context, req core.GraphQLRequest) (core.GraphQLResponse, error) {
	return a.execute(ctx, req)
}

func (a *GraphQLAdapter) execute(ctx context.Context, req core.GraphQLRequest) (core.GraphQLResponse, error) {
	if a == nil || a.Client == nil {
		return core.GraphQLResponse{}, transportError(
			"transport: graphql adapter requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindGraphQL},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint := strings.TrimSpace(a.Endpoint)
	if endpoint == "" {
		return core.GraphQLResponse{}, transportError(
			"transport: graphql endpoint is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL},
		)
	}
	if strings.TrimSpace(req.Document) == "" {
		return core.GraphQLResponse{}, transportError(
			"transport: graphql document is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL, "endpoint": endpoint},
		)
	}

	payload := map[string]any{"query": req.Document}
	if operationName := strings.TrimSpace(req.OperationName); operationName != "" {
		payload["operationName"] = operationName
	}
	if len(req.Variables) > 0 {
		payload["variables"] = req.Variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return core.GraphQLResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: marshal graphql payload",
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL, "operation": req.OperationName},
		)
	}

	requestCtx := ctx
	cancel := func() {}
	if a.RequestTimeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, a.RequestTimeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return core.GraphQLResponse{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create graphql request",
			http.StatusBadRequest,
			map[string]any{"adapter": KindGraphQL, "endpoint": endpoint},
		)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	for key, value := range a.DefaultHeaders {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if a.Session != nil {
		token, err := a.Session.AccessToken(ctx)
		if err != nil {
			// Left unclassified so callers can still see the session's own
			// failure, including a not-authorized condition.
			return core.GraphQLResponse{}, fmt.Errorf("transport: resolve access token: %w", err)
		}
		if token = strings.TrimSpace(token); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		if isContextCancellation(err) {
			// Cancellation must stay detectable with errors.Is.
			return core.GraphQLResponse{}, err
		}
		return core.GraphQLResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute graphql request",
			http.StatusBadGateway,
			map[string]any{"adapter": KindGraphQL, "endpoint": endpoint, "operation": req.OperationName},
		)
	}
	defer httpRes.Body.Close()

	maxBodyBytes := a.MaxResponseBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultResponseBodyLimit
	}
	responseBody, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodyBytes+1))
	if err != nil {
		if isContextCancellation(err) {
			return core.GraphQLResponse{}, err
		}
		return core.GraphQLResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: read graphql response",
			http.StatusBadGateway,
			map[string]any{"adapter": KindGraphQL, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(responseBody)) > maxBodyBytes {
		return core.GraphQLResponse{}, transportError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", maxBodyBytes),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{
				"adapter":          KindGraphQL,
				"status_code":      httpRes.StatusCode,
				"response_limit_b": maxBodyBytes,
			},
		)
	}

	var envelope core.GraphQLResponse
	if err := json.Unmarshal(responseBody, &envelope); err != nil {
		if httpRes.StatusCode != http.StatusOK {
			return synthesizedEnvelope(httpRes.StatusCode, responseBody), nil
		}
		return core.GraphQLResponse{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode graphql response",
			http.StatusBadGateway,
			map[string]any{"adapter": KindGraphQL, "status_code": httpRes.StatusCode},
		)
	}

	if envelope.HasErrors() {
		fillErrorHTTPStatus(envelope.Errors, httpRes.StatusCode)
		return envelope, nil
	}
	if httpRes.StatusCode != http.StatusOK && !envelope.HasData() {
		return synthesizedEnvelope(httpRes.StatusCode, responseBody), nil
	}
	return envelope, nil
}

// synthesizedEnvelope turns a failed HTTP exchange without a usable error
// list into a single response error carrying the status, so the caller's
// classifier can apply its status rules.
func synthesizedEnvelope(statusCode int, body []byte) core.GraphQLResponse {
	message := strings.TrimSpace(http.StatusText(statusCode))
	if snippet := bodySnippet(body); snippet != "" {
		message = message + ": " + snippet
	}
	return core.GraphQLResponse{
		Errors: []core.GraphQLError{{
			Message:    message,
			HTTPStatus: statusCode,
		}},
	}
}

func fillErrorHTTPStatus(gqlErrs []core.GraphQLError, statusCode int) {
	for i := range gqlErrs {
		if gqlErrs[i].HTTPStatus != 0 {
			continue
		}
		if status := httpStatusFromExtensions(gqlErrs[i].Extensions); status != 0 {
			gqlErrs[i].HTTPStatus = status
			continue
		}
		if statusCode != http.StatusOK {
			gqlErrs[i].HTTPStatus = statusCode
		}
	}
}

func httpStatusFromExtensions(extensions map[string]any) int {
	if len(extensions) == 0 {
		return 0
	}
	switch value := extensions["httpStatus"].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case json.Number:
		status, err := value.Int64()
		if err != nil {
			return 0
		}
		return int(status)
	default:
		return 0
	}
}

func bodySnippet(body []byte) string {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxErrorBodySnippet {
		snippet = snippet[:maxErrorBodySnippet]
	}
	return snippet
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

var _ core.Transport = (*GraphQLAdapter)(nil)
