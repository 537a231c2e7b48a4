package menu

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

// loadParent returns the parent restaurant's owner uid, or NotFound.
func (s *Service) loadParent(ctx context.Context, restaurantID string) (string, error) {
	doc, err := s.store.Get(ctx, "restaurants/"+restaurantID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("restaurant %s: %w", restaurantID, apperr.ErrNotFound)
	}
	ownerUID, _ := doc["owner_uid"].(string)
	return ownerUID, nil
}

func (s *Service) authorizeParent(ctx context.Context, restaurantID, uid string) error {
	ownerUID, err := s.loadParent(ctx, restaurantID)
	if err != nil {
		return err
	}
	caller, err := s.policy.ResolveCaller(ctx, uid)
	if err != nil {
		return err
	}
	return s.policy.Authorize(caller, ownerUID)
}

// --------------------------------------------------
// Create menu item (owner or admin of the parent)
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, restaurantID string, input Input, uid string) (*MenuItem, error) {
	if err := s.authorizeParent(ctx, restaurantID, uid); err != nil {
		return nil, err
	}

	if err := ValidateAttributes(input.Allergens, input.DietaryCategories); err != nil {
		return nil, err
	}

	id, err := s.ids.Allocate(ctx, "menu_items")
	if err != nil {
		return nil, err
	}

	item := newItem(id, restaurantID, input)
	doc, err := store.Encode(item)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, "menu_items/"+id, doc); err != nil {
		return nil, err
	}

	return item, nil
}

// --------------------------------------------------
// List menu items with optional filters
// --------------------------------------------------
func (s *Service) List(ctx context.Context, restaurantID, uid string, filters Filters) ([]*MenuItem, error) {
	if err := s.authorizeParent(ctx, restaurantID, uid); err != nil {
		return nil, err
	}

	all, err := s.store.Get(ctx, "menu_items")
	if err != nil {
		return nil, err
	}

	items := make([]*MenuItem, 0)
	for id, raw := range all {
		doc, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if parent, _ := doc["restaurant_id"].(string); parent != restaurantID {
			continue
		}

		var item MenuItem
		if err := store.Decode(doc, &item); err != nil {
			return nil, err
		}
		item.ID = id

		if filters.DietaryCategory != "" && !contains(item.DietaryCategories, filters.DietaryCategory) {
			continue
		}
		if containsAny(item.Allergens, filters.AllergenFree) {
			continue
		}
		items = append(items, &item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// --------------------------------------------------
// Update menu item (full replace; id and restaurant_id preserved)
// --------------------------------------------------
// Update runs no ownership check: any authenticated caller may update once
// the parent and linkage checks pass.
func (s *Service) Update(ctx context.Context, restaurantID, itemID string, input Input) (*MenuItem, error) {
	if _, err := s.loadParent(ctx, restaurantID); err != nil {
		return nil, err
	}

	if _, err := s.loadItem(ctx, restaurantID, itemID); err != nil {
		return nil, err
	}

	if err := ValidateAttributes(input.Allergens, input.DietaryCategories); err != nil {
		return nil, err
	}

	item := newItem(itemID, restaurantID, input)
	doc, err := store.Encode(item)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, "menu_items/"+itemID, doc); err != nil {
		return nil, err
	}

	return item, nil
}

// --------------------------------------------------
// Delete menu item
// --------------------------------------------------
func (s *Service) Delete(ctx context.Context, restaurantID, itemID string) error {
	if _, err := s.loadParent(ctx, restaurantID); err != nil {
		return err
	}
	if _, err := s.loadItem(ctx, restaurantID, itemID); err != nil {
		return err
	}
	return s.store.Delete(ctx, "menu_items/"+itemID)
}

// loadItem enforces the parent linkage: an item stored under a different
// restaurant is MismatchedParent, distinct from NotFound.
func (s *Service) loadItem(ctx context.Context, restaurantID, itemID string) (map[string]any, error) {
	doc, err := s.store.Get(ctx, "menu_items/"+itemID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("menu item %s: %w", itemID, apperr.ErrNotFound)
	}
	if parent, _ := doc["restaurant_id"].(string); parent != restaurantID {
		return nil, fmt.Errorf("menu item %s: %w", itemID, apperr.ErrMismatchedParent)
	}
	return doc, nil
}

func newItem(id, restaurantID string, input Input) *MenuItem {
	item := &MenuItem{
		ID:                id,
		RestaurantID:      restaurantID,
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Allergens:         input.Allergens,
		DietaryCategories: input.DietaryCategories,
	}
	if item.Allergens == nil {
		item.Allergens = []string{}
	}
	if item.DietaryCategories == nil {
		item.DietaryCategories = []string{}
	}
	return item
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsAny(values, targets []string) bool {
	for _, t := range targets {
		if contains(values, t) {
			return true
		}
	}
	return false
}
