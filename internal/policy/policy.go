package policy

import (
	"context"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

// Caller is the resolved identity behind a request.
type Caller struct {
	UID     string
	IsAdmin bool
}

// Engine decides owner-or-admin access. It only ever reads; write paths
// belong to the entity services.
type Engine struct {
	store store.Store
}

func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// ResolveCaller looks up the user's admin flag at users/<uid>. An absent
// user record means not an admin, never an error.
func (e *Engine) ResolveCaller(ctx context.Context, uid string) (Caller, error) {
	if uid == "" {
		return Caller{}, apperr.ErrUnauthenticated
	}

	user, err := e.store.Get(ctx, "users/"+uid)
	if err != nil {
		return Caller{}, err
	}

	caller := Caller{UID: uid}
	if user != nil {
		isAdmin, _ := user["is_admin"].(bool)
		caller.IsAdmin = isAdmin
	}
	return caller, nil
}

// Authorize allows access iff the caller owns the resource or is an admin.
func (e *Engine) Authorize(caller Caller, ownerUID string) error {
	if caller.IsAdmin || caller.UID == ownerUID {
		return nil
	}
	return apperr.ErrForbidden
}
