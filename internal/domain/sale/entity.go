// internal/domain/sale/entity.go
package sale

import (
	"time"

	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Item is one product line on a sale. Quantity below 1 is tolerated on the
// wire but never counted by the reminder engine.
type Item struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Sale struct {
	ID         string     `json:"id" db:"id"`
	CustomerID string     `json:"customer_id" db:"customer_id"`
	Date       civil.Date `json:"date" db:"date"`
	Items      []Item     `json:"items" db:"items"`
	TotalCents int64      `json:"total_cents" db:"total_cents"`
	Status     Status     `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TotalUnits sums the positive item quantities. Items with zero or negative
// quantity are ignored.
func (s *Sale) TotalUnits() int {
	units := 0
	for _, it := range s.Items {
		if it.Quantity > 0 {
			units += it.Quantity
		}
	}
	return units
}
