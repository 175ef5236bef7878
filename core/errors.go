package core

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes for every member of the entitlements error taxonomy. Every
// error surfaced by the client carries exactly one of these codes; callers
// can match on them exhaustively.
const (
	EntitlementsErrorAmbiguous        = "ENTITLEMENTS_AMBIGUOUS"
	EntitlementsErrorAuthentication   = "ENTITLEMENTS_AUTHENTICATION_FAILED"
	EntitlementsErrorFailed           = "ENTITLEMENTS_REQUEST_FAILED"
	EntitlementsErrorInsufficient     = "ENTITLEMENTS_INSUFFICIENT"
	EntitlementsErrorInvalidArgument  = "ENTITLEMENTS_INVALID_ARGUMENT"
	EntitlementsErrorInvalidToken     = "ENTITLEMENTS_INVALID_TOKEN"
	EntitlementsErrorNoneAssigned     = "ENTITLEMENTS_NONE_ASSIGNED"
	EntitlementsErrorNoExternalID     = "ENTITLEMENTS_NO_EXTERNAL_ID"
	EntitlementsErrorNoBillingGroup   = "ENTITLEMENTS_NO_BILLING_GROUP"
	EntitlementsErrorSequenceNotFound = "ENTITLEMENTS_SEQUENCE_NOT_FOUND"
	EntitlementsErrorSetNotFound      = "ENTITLEMENTS_SET_NOT_FOUND"
	EntitlementsErrorService          = "ENTITLEMENTS_SERVICE_ERROR"
	EntitlementsErrorNotSignedIn      = "ENTITLEMENTS_NOT_SIGNED_IN"
	EntitlementsErrorUnknown          = "ENTITLEMENTS_UNKNOWN"
)

// Service error-type markers matched by substring containment against the
// errorType field of a response error.
const (
	markerAmbiguousEntitlements    = "AmbiguousEntitlementsError"
	markerInvalidArgument          = "InvalidArgumentError"
	markerInvalidToken             = "InvalidTokenError"
	markerInsufficientEntitlements = "InsufficientEntitlementsError"
	markerNoEntitlements           = "NoEntitlementsError"
	markerNoExternalID             = "NoExternalIdError"
	markerNoBillingGroup           = "NoBillingGroupError"
	markerSequenceNotFound         = "EntitlementsSequenceNotFoundError"
	markerSetNotFound              = "EntitlementsSetNotFoundError"
	markerServiceError             = "ServiceError"
)

var ErrNotAuthorized = errors.New("core: not authorized")

// NotAuthorizedError is the condition raised by the authentication layer
// when a session cannot produce valid credentials. The error classifier
// recognizes it anywhere in a cause chain and converts it to the
// Authentication taxonomy member.
type NotAuthorizedError struct {
	Cause error
}

func (e *NotAuthorizedError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrNotAuthorized.Error()
	}
	return ErrNotAuthorized.Error() + ": " + e.Cause.Error()
}

func (e *NotAuthorizedError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return ErrNotAuthorized
	}
	return errors.Join(ErrNotAuthorized, e.Cause)
}

func NotAuthorized(cause error) error {
	return &NotAuthorizedError{Cause: cause}
}

// maxCauseChainDepth bounds the cause-chain walk so malformed
// self-referential chains terminate.
const maxCauseChainDepth = 32

// classifyGraphQLError maps one service-reported error to a taxonomy member.
// An HTTP status exposed by the transport takes priority over the error-type
// string; error-type matching is first-match-wins in the order below.
func classifyGraphQLError(gqlErr GraphQLError) *goerrors.Error {
	message := gqlErr.String()
	switch {
	case gqlErr.HTTPStatus == http.StatusUnauthorized:
		return newEntitlementsError(message, goerrors.CategoryAuth, EntitlementsErrorAuthentication)
	case gqlErr.HTTPStatus >= http.StatusInternalServerError:
		return newEntitlementsError(message, goerrors.CategoryExternal, EntitlementsErrorFailed)
	}

	errorType := gqlErr.ErrorType
	switch {
	case strings.Contains(errorType, markerAmbiguousEntitlements):
		return newEntitlementsError(message, goerrors.CategoryConflict, EntitlementsErrorAmbiguous)
	case strings.Contains(errorType, markerInvalidArgument):
		return newEntitlementsError(message, goerrors.CategoryBadInput, EntitlementsErrorInvalidArgument)
	case strings.Contains(errorType, markerInvalidToken):
		return newEntitlementsError(message, goerrors.CategoryAuth, EntitlementsErrorInvalidToken)
	case strings.Contains(errorType, markerInsufficientEntitlements):
		return newEntitlementsError(message, goerrors.CategoryAuthz, EntitlementsErrorInsufficient)
	case strings.Contains(errorType, markerNoEntitlements):
		return newEntitlementsError(message, goerrors.CategoryNotFound, EntitlementsErrorNoneAssigned)
	case strings.Contains(errorType, markerNoExternalID):
		return newEntitlementsError(message, goerrors.CategoryNotFound, EntitlementsErrorNoExternalID)
	case strings.Contains(errorType, markerNoBillingGroup):
		return newEntitlementsError(message, goerrors.CategoryNotFound, EntitlementsErrorNoBillingGroup)
	case strings.Contains(errorType, markerSequenceNotFound):
		return newEntitlementsError(message, goerrors.CategoryNotFound, EntitlementsErrorSequenceNotFound)
	case strings.Contains(errorType, markerSetNotFound):
		return newEntitlementsError(message, goerrors.CategoryNotFound, EntitlementsErrorSetNotFound)
	case strings.Contains(errorType, markerServiceError):
		return newEntitlementsError(message, goerrors.CategoryExternal, EntitlementsErrorService)
	}

	return newEntitlementsError(message, goerrors.CategoryExternal, EntitlementsErrorFailed)
}

// defaultErrorMapper normalizes errors raised while invoking the transport.
// Walking the cause chain, in priority order: an error already carrying a
// taxonomy classification passes through unchanged; a cancellation signal
// returns nil so the caller keeps the original error verbatim; a
// not-authorized condition becomes Authentication with the original error as
// cause. Anything else becomes Unknown wrapping the original error.
func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	chain := collectCauseChain(err, maxCauseChainDepth)

	for _, cause := range chain {
		if rich, ok := cause.(*goerrors.Error); ok {
			return ensureEntitlementsErrorEnvelope(rich)
		}
	}
	for _, cause := range chain {
		if cause == context.Canceled || cause == context.DeadlineExceeded {
			return nil
		}
	}
	for _, cause := range chain {
		if isNotAuthorized(cause) {
			return wrapEntitlementsError(
				err,
				goerrors.CategoryAuth,
				"core: authentication rejected",
				EntitlementsErrorAuthentication,
			)
		}
	}
	return wrapEntitlementsError(
		err,
		goerrors.CategoryInternal,
		"core: unexpected entitlements failure",
		EntitlementsErrorUnknown,
	)
}

func collectCauseChain(err error, limit int) []error {
	chain := make([]error, 0, 8)
	pending := []error{err}
	for len(pending) > 0 && len(chain) < limit {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		chain = append(chain, next)
		switch unwrapped := next.(type) {
		case interface{ Unwrap() error }:
			pending = append(pending, unwrapped.Unwrap())
		case interface{ Unwrap() []error }:
			pending = append(pending, unwrapped.Unwrap()...)
		}
	}
	return chain
}

func isNotAuthorized(err error) bool {
	if err == nil {
		return false
	}
	if err == ErrNotAuthorized {
		return true
	}
	_, ok := err.(*NotAuthorizedError)
	return ok
}

func newEntitlementsError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureEntitlementsErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func wrapEntitlementsError(source error, category goerrors.Category, message string, textCode string) *goerrors.Error {
	return ensureEntitlementsErrorEnvelope(
		goerrors.Wrap(source, category, message).
			WithTextCode(textCode),
	)
}

func ensureEntitlementsErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = entitlementsHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultEntitlementsTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultEntitlementsTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return EntitlementsErrorInvalidArgument
	case goerrors.CategoryAuth:
		return EntitlementsErrorAuthentication
	case goerrors.CategoryAuthz:
		return EntitlementsErrorInsufficient
	case goerrors.CategoryNotFound:
		return EntitlementsErrorNoneAssigned
	case goerrors.CategoryConflict:
		return EntitlementsErrorAmbiguous
	case goerrors.CategoryExternal:
		return EntitlementsErrorFailed
	default:
		return EntitlementsErrorUnknown
	}
}

func entitlementsHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
