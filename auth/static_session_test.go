package auth

import (
	"context"
	"errors"
	"testing"
)

func TestStaticTokenSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	session := NewStaticTokenSession("")

	if session.IsSignedIn(ctx) {
		t.Fatal("expected signed out without token")
	}
	_, err := session.AccessToken(ctx)
	if err == nil {
		t.Fatal("expected access token error without token")
	}
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected not-authorized error, got %v", err)
	}
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no-session cause, got %v", err)
	}

	session.SetToken("  access-token  ")
	if !session.IsSignedIn(ctx) {
		t.Fatal("expected signed in after set")
	}
	token, err := session.AccessToken(ctx)
	if err != nil {
		t.Fatalf("access token: %v", err)
	}
	if token != "access-token" {
		t.Fatalf("expected trimmed token, got %q", token)
	}

	session.Clear()
	if session.IsSignedIn(ctx) {
		t.Fatal("expected signed out after clear")
	}
}
