package restaurant

// Restaurant is stored at restaurants/<id>. The id lives in the path and is
// merged into responses; owner_uid is stamped at creation and survives every
// update.
type Restaurant struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CuisineType string `json:"cuisine_type"`
	OwnerUID    string `json:"owner_uid,omitempty"`
}

// Input carries the client-settable fields of a restaurant.
type Input struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CuisineType string `json:"cuisine_type"`
}
