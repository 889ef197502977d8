package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harborview/fleetwatch/internal/domain"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	issued := domain.Identity{
		Role:   domain.RoleOrgUser,
		UserID: "HYLA35_ORG12",
		Email:  "ops@org12.example",
	}

	token, err := auth.IssueToken(issued, *jwt.NewNumericDate(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	identity, err := auth.AuthToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if identity != issued {
		t.Fatalf("expected %+v, got %+v", issued, identity)
	}
}

func TestAuthTokenRejectsWrongSecret(t *testing.T) {
	auth := NewAuthService("test-secret")
	other := NewAuthService("other-secret")

	token, err := other.IssueToken(domain.Identity{Role: domain.RoleGuest, UserID: "GUEST7"}, *jwt.NewNumericDate(time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := auth.AuthToken(context.Background(), token); err == nil {
		t.Fatalf("token signed with a different secret must be rejected")
	}
}

func TestAuthTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret")

	token, err := auth.IssueToken(domain.Identity{Role: domain.RoleGuest, UserID: "GUEST7"}, *jwt.NewNumericDate(time.Now().Add(-time.Minute)))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := auth.AuthToken(context.Background(), token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}

func TestAuthTokenUnknownRoleDegrades(t *testing.T) {
	auth := NewAuthService("test-secret")

	claims := identityClaims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "HYLA35_ORG12",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	identity, err := auth.AuthToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Role != domain.RoleUnknown {
		t.Fatalf("unrecognized role claim must degrade to unknown, got %v", identity.Role)
	}
}
