package app

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"estate-admin/internal/core/auth"
	"estate-admin/internal/core/config"
	"estate-admin/internal/domain"
)

func newMemoryApp(t *testing.T, secret string) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"
	cfg.JWT = config.JWT{Secret: secret, Issuer: "estate-admin", AccessTokenTTLMin: 60}
	a, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t, "test-secret")

	tok, u, err := a.IssueToken(ctx, "u-admin")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if u.LastLogin == nil {
		t.Fatal("login not recorded")
	}
	j, _ := auth.NewJWTer(a.Cfg.JWT)
	claims, err := j.Parse(tok)
	if err != nil || claims.UID != "u-admin" || claims.Role != string(domain.RoleSuperAdmin) {
		t.Fatalf("claims = %+v, %v", claims, err)
	}

	if _, _, err := a.IssueToken(ctx, "missing"); err == nil {
		t.Fatal("issued a token for a missing user")
	}
}

func TestIssueTokenRefusesInactiveUser(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t, "test-secret")
	if _, err := a.Deps.Users.UpdateStatus(ctx, "u-viewer", domain.UserInactive); err != nil {
		t.Fatal(err)
	}

	if _, _, err := a.IssueToken(ctx, "u-viewer"); err == nil {
		t.Fatal("issued a token for an inactive user")
	}
	u, _ := a.Deps.Users.GetByID(ctx, "u-viewer")
	if u.LastLogin != nil {
		t.Fatal("refused login was still recorded")
	}
}

func TestIssueTokenNeedsSecret(t *testing.T) {
	a := newMemoryApp(t, "")
	if _, _, err := a.IssueToken(context.Background(), "u-admin"); err == nil {
		t.Fatal("issued a token without a secret")
	}
}
