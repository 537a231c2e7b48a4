package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/reece333/SafeEats-TeamM/internal/store"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	st := store.NewMemory()
	service := NewService(st)
	ctx := context.Background()

	password := "Password@123"

	user, err := service.Register(ctx, "Test User", "test@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, _ := st.Get(ctx, "users/"+user.UID)
	if doc == nil {
		t.Fatalf("user not found in store")
	}
	if doc["password"] == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := NewService(store.NewMemory())
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "dup@example.com", "pw123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := service.Register(ctx, "B", "dup@example.com", "pw123456")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLoginFlow(t *testing.T) {
	service := NewService(store.NewMemory())
	ctx := context.Background()

	registered, err := service.Register(ctx, "Test User", "login@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := service.Login(ctx, "login@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UID != registered.UID {
		t.Errorf("expected uid %s, got %s", registered.UID, user.UID)
	}

	if _, err := service.Login(ctx, "login@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(ctx, "nobody@example.com", "Password@123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken("user-abc", "test@example.com", true)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	uid, email, isAdmin, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if uid != "user-abc" {
		t.Errorf("expected uid user-abc, got %s", uid)
	}
	if email != "test@example.com" {
		t.Errorf("expected email test@example.com, got %s", email)
	}
	if !isAdmin {
		t.Errorf("expected is_admin claim to round-trip")
	}
}
