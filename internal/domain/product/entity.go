// internal/domain/product/entity.go
package product

import (
	"database/sql"
	"time"
)

// Product is a kombucha variety offered for sale. Prices are stored in
// cents to keep arithmetic exact.
type Product struct {
	ID         string         `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	PriceCents int64          `json:"price_cents" db:"price_cents"`
	PhotoURL   sql.NullString `json:"photo_url,omitempty" db:"photo_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
