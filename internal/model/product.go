package model

import (
	"time"
)

// Product is a catalog entry. Available is false once the product is
// soft-deleted; such rows are kept but never served.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductSummary is the listing projection of a Product.
type ProductSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageMeta describes where a page sits in the full listing.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

type ProductPage struct {
	Data []ProductSummary `json:"data"`
	Meta PageMeta         `json:"meta"`
}
