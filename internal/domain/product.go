package domain

import "github.com/google/uuid"

// Product is a catalog entry. It only seeds a LineItem's name and price at
// attach time; attached items keep their snapshot if the product changes.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
}

// DefaultProducts returns the catalog seeded on first run.
func DefaultProducts() []Product {
	return []Product{
		{ID: uuid.New().String(), Name: "Coca-Cola 0.5L", UnitPrice: 7000},
		{ID: uuid.New().String(), Name: "Chips", UnitPrice: 5000},
		{ID: uuid.New().String(), Name: "Hot-Dog", UnitPrice: 12000},
		{ID: uuid.New().String(), Name: "Mineral Water", UnitPrice: 4000},
	}
}
