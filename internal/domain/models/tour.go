package models

// Tour is the read-only catalog view this service consumes. Catalog CRUD
// lives elsewhere; pricing only needs title and unit prices by id.
type Tour struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Location   string  `json:"location,omitempty"`
	PriceAdult float64 `json:"priceAdult"`
	PriceChild float64 `json:"priceChild"`
}
