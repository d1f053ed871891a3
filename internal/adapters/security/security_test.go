package security

import (
	"errors"
	"testing"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)
	hash, err := v.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("hash must not equal the secret")
	}
	if err := v.Verify(hash, "password123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := v.Verify(hash, "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := v.Verify("plain", "plain"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-bcrypt stored value must not verify, got %v", err)
	}
}

func TestPlaintextVerifier(t *testing.T) {
	var v PlaintextVerifier
	if err := v.Verify("password123", "password123"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := v.Verify("password123", "password124"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTIssuerRoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("0123456789abcdef0123", time.Hour, "content-scheduling")
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, claims, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parsed, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != 7 || parsed.SessionID != claims.SessionID {
		t.Fatalf("unexpected claims %+v, issued %+v", parsed, claims)
	}
}

func TestJWTIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer, err := NewJWTIssuer("0123456789abcdef0123", time.Minute, "content-scheduling")
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer.nowFn = func() time.Time { return now }
	token, _, err := issuer.Issue(3)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other, _ := NewJWTIssuer("another-secret-value-000", time.Hour, "content-scheduling")
	foreign, _, err := other.Issue(3)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(foreign); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token signed with another secret to be rejected, got %v", err)
	}
	if _, err := issuer.Parse("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected garbage to be rejected, got %v", err)
	}
}
