package idgen

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

const (
	defaultWidth    = 5
	defaultAttempts = 5
)

// Allocator hands out fixed-width numeric ids, checking each candidate
// against the store before returning it. The check and the caller's write
// are not atomic, so two concurrent allocations in the same namespace can
// still collide; at this scale the retry budget absorbs the birthday risk.
type Allocator struct {
	store    store.Store
	width    int
	attempts int
	randInt  func(min, max int) int
}

func New(st store.Store) *Allocator {
	return &Allocator{
		store:    st,
		width:    defaultWidth,
		attempts: defaultAttempts,
		randInt: func(min, max int) int {
			return min + rand.Intn(max-min+1)
		},
	}
}

// Allocate returns an id with exactly `width` digits (no leading zero) that
// is not present under namespace. Exhausting the retry budget is a capacity
// signal, not a logic bug: it surfaces as ErrAllocationExhausted.
func (a *Allocator) Allocate(ctx context.Context, namespace string) (string, error) {
	min := pow10(a.width - 1)
	max := pow10(a.width) - 1

	for i := 0; i < a.attempts; i++ {
		id := fmt.Sprintf("%d", a.randInt(min, max))

		existing, err := a.store.Get(ctx, namespace+"/"+id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", apperr.ErrAllocationExhausted, a.attempts)
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
