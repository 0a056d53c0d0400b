package domain

// Category groups products in the catalog.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Product belongs to exactly one category. Category is populated on reads
// so the transport view can nest it.
type Product struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	CategoryID int64     `json:"category_id" db:"category_id"`
	Category   *Category `json:"category,omitempty"`
}
