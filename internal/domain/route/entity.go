// internal/domain/route/entity.go
package route

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Route is an ordered delivery run over a set of customers.
type Route struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Notes       sql.NullString `json:"notes,omitempty" db:"notes"`
	CustomerIDs pq.StringArray `json:"customer_ids" db:"customer_ids"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
