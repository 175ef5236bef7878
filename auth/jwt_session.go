package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-entitlements/core"
)

// TokenSource returns the current raw JWT for the user, typically from the
// embedding application's identity layer.
type TokenSource func(ctx context.Context) (string, error)

type JWTSessionConfig struct {
	TokenSource TokenSource
	// Leeway extends the accepted lifetime past the token's exp claim to
	// absorb clock skew.
	Leeway time.Duration
	Now    func() time.Time
}

// JWTSession reports signed-in while the source produces a parseable,
// unexpired JWT. The endpoint verifies signatures; the session only gates on
// the exp claim so obviously stale tokens are never sent.
type JWTSession struct {
	config JWTSessionConfig
	parser *jwt.Parser
}

func NewJWTSession(cfg JWTSessionConfig) *JWTSession {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	leeway := cfg.Leeway
	if leeway < 0 {
		leeway = 0
	}
	return &JWTSession{
		config: JWTSessionConfig{
			TokenSource: cfg.TokenSource,
			Leeway:      leeway,
			Now:         now,
		},
		parser: jwt.NewParser(),
	}
}

func (s *JWTSession) IsSignedIn(ctx context.Context) bool {
	_, err := s.currentToken(ctx)
	return err == nil
}

func (s *JWTSession) AccessToken(ctx context.Context) (string, error) {
	token, err := s.currentToken(ctx)
	if err != nil {
		return "", NotAuthorized(err)
	}
	return token, nil
}

func (s *JWTSession) currentToken(ctx context.Context) (string, error) {
	if s == nil || s.config.TokenSource == nil {
		return "", ErrNoSession
	}
	raw, err := s.config.TokenSource(ctx)
	if err != nil {
		return "", fmt.Errorf("auth: resolve session token: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := s.parser.ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("auth: parse session token: %w", err)
	}
	if claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time
		if s.config.Now().After(expiry.Add(s.config.Leeway)) {
			return "", ErrSessionExpired
		}
	}
	return raw, nil
}

var _ core.SessionProvider = (*JWTSession)(nil)
