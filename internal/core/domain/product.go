package domain

import "time"

// ProductStatus represents the availability of a product in the catalog.
type ProductStatus string

const (
	ProductAvailable    ProductStatus = "AVAILABLE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

// Valid reports whether s is one of the known product statuses.
func (s ProductStatus) Valid() bool {
	return s == ProductAvailable || s == ProductDiscontinued
}

// Product is a catalog item.
type Product struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Price     float64       `json:"price"`
	Status    ProductStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
