package services

import (
	"context"
	"testing"
	"time"

	"spiritualgifts/models"
)

func TestSignupCreatesUserAndToken(t *testing.T) {
	db := newTestDB(t)
	tokens := NewTokenIssuer("secret", time.Hour)
	svc := NewAuthService(db, tokens)

	result, err := svc.Signup(context.Background(), SignupRequest{Fullname: "  Jane Doe ", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if result.User.Fullname != "Jane Doe" || result.User.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	id, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if id.ID != result.User.ID || id.Email != "jane@example.com" {
		t.Fatalf("token identity mismatch: %+v", id)
	}
}

func TestSignupRejectsBadEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, NewTokenIssuer("secret", time.Hour))

	_, err := svc.Signup(context.Background(), SignupRequest{Fullname: "A", Email: "not-an-email"})
	e, ok := AsError(err)
	if !ok || e.Kind != KindInvalid || e.Message != "Invalid email format" {
		t.Fatalf("expected invalid email format, got %v", err)
	}
	if n := countRows(t, db, &models.User{}); n != 0 {
		t.Fatalf("expected no users, got %d", n)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, NewTokenIssuer("secret", time.Hour))
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Fullname: "A", Email: "a@b.co"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupRequest{Fullname: "B", Email: "a@b.co"})
	if !IsKind(err, KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, NewTokenIssuer("secret", time.Hour))
	ctx := context.Background()
	user := createUserWithRole(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	result, err := svc.Login(ctx, LoginRequest{Email: " admin@example.com "})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.User.ID != user.ID || result.User.Role != models.RoleAdmin || result.Token == "" {
		t.Fatalf("unexpected login result: %+v", result)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com"}); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
