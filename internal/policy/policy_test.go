package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

func seededEngine(t *testing.T) *Engine {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()
	st.Set(ctx, "users/user1", map[string]any{"email": "u1@example.com", "is_admin": false})
	st.Set(ctx, "users/admin1", map[string]any{"email": "admin@example.com", "is_admin": true})
	return NewEngine(st)
}

func TestResolveCallerReadsAdminFlag(t *testing.T) {
	e := seededEngine(t)

	caller, err := e.ResolveCaller(context.Background(), "admin1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !caller.IsAdmin {
		t.Errorf("expected admin1 to resolve as admin")
	}
}

func TestResolveCallerAbsentUserIsNotAdmin(t *testing.T) {
	e := seededEngine(t)

	caller, err := e.ResolveCaller(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("absence of a user record must not be an error, got %v", err)
	}
	if caller.IsAdmin {
		t.Errorf("unknown user must not be admin")
	}
}

func TestResolveCallerEmptyUID(t *testing.T) {
	e := seededEngine(t)

	_, err := e.ResolveCaller(context.Background(), "")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorizeOwner(t *testing.T) {
	e := seededEngine(t)

	if err := e.Authorize(Caller{UID: "user1"}, "user1"); err != nil {
		t.Errorf("owner must be allowed, got %v", err)
	}
}

func TestAuthorizeDeniesNonOwner(t *testing.T) {
	e := seededEngine(t)

	err := e.Authorize(Caller{UID: "user2"}, "user1")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorizeAdminOverride(t *testing.T) {
	e := seededEngine(t)

	if err := e.Authorize(Caller{UID: "admin1", IsAdmin: true}, "user1"); err != nil {
		t.Errorf("admin must be allowed regardless of owner, got %v", err)
	}
}
