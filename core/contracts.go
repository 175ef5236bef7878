package core

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// GraphQLRequest is the payload for one GraphQL operation. Document carries
// the full query or mutation text; Variables are optional and serialized
// verbatim by the transport.
type GraphQLRequest struct {
	Document      string
	OperationName string
	Variables     map[string]any
}

// GraphQLError is one service-reported error from a response's error list.
// ErrorType carries the service error-type string, for example
// "sudoplatform.entitlements.AmbiguousEntitlementsError". HTTPStatus is
// filled by the transport when the endpoint exposes one, zero otherwise.
type GraphQLError struct {
	Message    string         `json:"message"`
	ErrorType  string         `json:"errorType"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	HTTPStatus int            `json:"-"`
}

func (e GraphQLError) String() string {
	errorType := strings.TrimSpace(e.ErrorType)
	message := strings.TrimSpace(e.Message)
	switch {
	case errorType == "":
		return message
	case message == "":
		return errorType
	default:
		return errorType + ": " + message
	}
}

// GraphQLResponse is the decoded wire envelope of one operation.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

func (r GraphQLResponse) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r GraphQLResponse) HasData() bool {
	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 {
		return false
	}
	return !bytes.Equal(trimmed, []byte("null"))
}

// Transport executes a single GraphQL operation against the entitlements
// endpoint. Implementations must honor context cancellation and must surface
// cancellation errors so callers can detect them with errors.Is; they must
// never repackage a cancellation inside a classified error.
type Transport interface {
	Query(ctx context.Context, req GraphQLRequest) (GraphQLResponse, error)
	Mutate(ctx context.Context, req GraphQLRequest) (GraphQLResponse, error)
}

// SessionProvider exposes the caller's authentication state. AccessToken is
// only consulted while IsSignedIn reports true.
type SessionProvider interface {
	IsSignedIn(ctx context.Context) bool
	AccessToken(ctx context.Context) (string, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
