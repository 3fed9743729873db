// Package product is the catalog collaborator: typed product records backed
// by Postgres, with validation at the boundary instead of at call sites.
package product

import (
	"time"

	"github.com/lib/pq"
)

// Product is the catalog record. Price is whole TRY and nullable; stock is
// free-form text ("3", "sold out"), kept as the shop entered it.
type Product struct {
	ID          string         `json:"id" db:"product_id"`
	Name        string         `json:"name" db:"name"`
	Description *string        `json:"description" db:"description"`
	Price       *int           `json:"price" db:"price"`
	ImageURL    *string        `json:"imageUrl" db:"image_url"`
	ImageURLs   pq.StringArray `json:"imageUrls" db:"image_urls"`
	Categories  pq.StringArray `json:"categories" db:"categories"`
	Stock       *string        `json:"stock" db:"stock"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
	Version     int            `json:"-" db:"version"`
}

type ProductNew struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *int     `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	ImageURLs   []string `json:"imageUrls" validate:"omitempty,dive,url"`
	Categories  []string `json:"categories"`
	Stock       *string  `json:"stock"`
}

type ProductUp struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int     `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	ImageURLs   []string `json:"imageUrls" validate:"omitempty,dive,url"`
	Categories  []string `json:"categories"`
	Stock       *string  `json:"stock"`
}
