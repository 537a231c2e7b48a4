package menu

// MenuItem is stored at menu_items/<id> with both id and restaurant_id
// stamped into the record. Ownership is inherited from the parent
// restaurant, never stored on the item itself.
type MenuItem struct {
	ID                string   `json:"id"`
	RestaurantID      string   `json:"restaurant_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	Allergens         []string `json:"allergens"`
	DietaryCategories []string `json:"dietaryCategories"`
}

// Input carries the client-settable fields of a menu item.
type Input struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	Allergens         []string `json:"allergens"`
	DietaryCategories []string `json:"dietaryCategories"`
}

// Filters are pure post-filters over the authorized item set, applied in
// order: dietary category first, then allergen exclusion.
type Filters struct {
	DietaryCategory string
	AllergenFree    []string
}
