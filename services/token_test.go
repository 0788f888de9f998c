package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.TTL() != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", issuer.TTL())
	}

	token, err := issuer.Issue(Identity{ID: 7, Email: "a@b.co", Fullname: "Ann", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if id.ID != 7 || id.Email != "a@b.co" || id.Fullname != "Ann" || !id.IsAdmin() {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(Identity{ID: 1, Role: "user"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := issuer.Verify(token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Issue(Identity{ID: 1})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := NewTokenIssuer("two", time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Identity: Identity{ID: 1, Role: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenIssuer("secret", time.Hour).Verify(token); !IsKind(err, KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret", time.Hour).Verify("not-a-token"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
