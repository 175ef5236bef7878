package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-entitlements/core"
)

// StaticTokenSession holds a bearer token set by the embedding application.
// It reports signed-in while a token is present; Clear signs the user out.
// Safe for concurrent use.
type StaticTokenSession struct {
	mu    sync.RWMutex
	token string
}

func NewStaticTokenSession(token string) *StaticTokenSession {
	return &StaticTokenSession{token: strings.TrimSpace(token)}
}

func (s *StaticTokenSession) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

func (s *StaticTokenSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *StaticTokenSession) IsSignedIn(context.Context) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *StaticTokenSession) AccessToken(context.Context) (string, error) {
	if s == nil {
		return "", NotAuthorized(ErrNoSession)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", NotAuthorized(ErrNoSession)
	}
	return s.token, nil
}

var _ core.SessionProvider = (*StaticTokenSession)(nil)
