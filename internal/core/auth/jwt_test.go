package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"estate-admin/internal/core/config"
)

func TestIssueAndParse(t *testing.T) {
	j, err := NewJWTer(config.JWT{Secret: "s3cret", Issuer: "estate-admin", AccessTokenTTLMin: 30})
	if err != nil {
		t.Fatal(err)
	}
	tok, err := j.Issue("u-admin", "Super Admin")
	if err != nil {
		t.Fatal(err)
	}
	c, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.UID != "u-admin" || c.Role != "Super Admin" || c.Subject != "u-admin" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejects(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	j := &JWTer{Secret: []byte("a"), Issuer: "estate-admin", TTL: time.Hour, Now: func() time.Time { return base }}
	tok, _ := j.Issue("u-admin", "Viewer")

	other := &JWTer{Secret: []byte("b"), Issuer: "estate-admin", TTL: time.Hour, Now: j.Now}
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("accepted a token signed with another secret")
	}

	wrongIssuer := &JWTer{Secret: []byte("a"), Issuer: "someone-else", TTL: time.Hour, Now: j.Now}
	if _, err := wrongIssuer.Parse(tok); err == nil {
		t.Fatal("accepted a token from another issuer")
	}

	later := &JWTer{Secret: []byte("a"), Issuer: "estate-admin", TTL: time.Hour, Now: func() time.Time { return base.Add(2 * time.Hour) }}
	if _, err := later.Parse(tok); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expired token: %v", err)
	}
}

func TestNewJWTerNeedsSecret(t *testing.T) {
	if _, err := NewJWTer(config.JWT{}); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}
