package auth

import (
	"errors"

	"github.com/goliatone/go-entitlements/core"
)

// NotAuthorizedError mirrors the core condition so session implementations
// can raise it without spelling out the import at every call site. The
// client's error mapper converts it to an authentication failure.
type NotAuthorizedError = core.NotAuthorizedError

var ErrNotAuthorized = core.ErrNotAuthorized

var ErrNoSession = errors.New("auth: no session token available")

var ErrSessionExpired = errors.New("auth: session token expired")

func NotAuthorized(cause error) error {
	return core.NotAuthorized(cause)
}
