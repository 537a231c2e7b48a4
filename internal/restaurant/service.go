package restaurant

import (
	"context"
	"fmt"
	"sort"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
	"github.com/reece333/SafeEats-TeamM/internal/idgen"
	"github.com/reece333/SafeEats-TeamM/internal/policy"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

type Service struct {
	store  store.Store
	ids    *idgen.Allocator
	policy *policy.Engine
}

func NewService(st store.Store, ids *idgen.Allocator, engine *policy.Engine) *Service {
	return &Service{store: st, ids: ids, policy: engine}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, input Input, uid string) (*Restaurant, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}

	id, err := s.ids.Allocate(ctx, "restaurants")
	if err != nil {
		return nil, err
	}

	record := &Restaurant{
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.Phone,
		CuisineType: input.CuisineType,
		OwnerUID:    uid,
	}

	doc, err := store.Encode(record)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, "restaurants/"+id, doc); err != nil {
		return nil, err
	}

	// First-restaurant linkage: remember the owner's first restaurant on the
	// user record. An absent user record is not an error.
	user, err := s.store.Get(ctx, "users/"+uid)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if existing, _ := user["restaurant_id"].(string); existing == "" {
			if err := s.store.Update(ctx, "users/"+uid, map[string]any{"restaurant_id": id}); err != nil {
				return nil, err
			}
		}
	}

	record.ID = id
	return record, nil
}

// --------------------------------------------------
// Get restaurant (owner or admin)
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, id, uid string) (*Restaurant, error) {
	doc, err := s.store.Get(ctx, "restaurants/"+id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("restaurant %s: %w", id, apperr.ErrNotFound)
	}

	caller, err := s.policy.ResolveCaller(ctx, uid)
	if err != nil {
		return nil, err
	}
	ownerUID, _ := doc["owner_uid"].(string)
	if err := s.policy.Authorize(caller, ownerUID); err != nil {
		return nil, err
	}

	var record Restaurant
	if err := store.Decode(doc, &record); err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

// --------------------------------------------------
// List restaurants (admins see all)
// --------------------------------------------------
func (s *Service) List(ctx context.Context, uid string) ([]*Restaurant, error) {
	caller, err := s.policy.ResolveCaller(ctx, uid)
	if err != nil {
		return nil, err
	}

	all, err := s.store.Get(ctx, "restaurants")
	if err != nil {
		return nil, err
	}

	restaurants := make([]*Restaurant, 0)
	for id, raw := range all {
		doc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ownerUID, _ := doc["owner_uid"].(string)
		if !caller.IsAdmin && ownerUID != caller.UID {
			continue
		}

		var record Restaurant
		if err := store.Decode(doc, &record); err != nil {
			return nil, err
		}
		record.ID = id
		restaurants = append(restaurants, &record)
	}

	sort.Slice(restaurants, func(i, j int) bool {
		return restaurants[i].ID < restaurants[j].ID
	})
	return restaurants, nil
}

// --------------------------------------------------
// Update restaurant (merge; owner_uid is never touched)
// --------------------------------------------------
func (s *Service) Update(ctx context.Context, id string, input Input, uid string) (*Restaurant, error) {
	doc, err := s.store.Get(ctx, "restaurants/"+id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("restaurant %s: %w", id, apperr.ErrNotFound)
	}

	caller, err := s.policy.ResolveCaller(ctx, uid)
	if err != nil {
		return nil, err
	}
	ownerUID, _ := doc["owner_uid"].(string)
	if err := s.policy.Authorize(caller, ownerUID); err != nil {
		return nil, err
	}

	// Load-then-merge: payload fields win, everything else in the stored
	// document (notably owner_uid) is preserved.
	patch, err := store.Encode(input)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		doc[k] = v
	}
	if err := s.store.Set(ctx, "restaurants/"+id, doc); err != nil {
		return nil, err
	}

	var record Restaurant
	if err := store.Decode(doc, &record); err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}
