package auth

// User is stored at users/<uid>. The policy engine reads is_admin from this
// record on every authorized operation; restaurant_id records the owner's
// first restaurant and is set by the restaurant service.
type User struct {
	UID          string `json:"uid"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}
