// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
)

type Customer struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Contact details
	Phone   sql.NullString `json:"phone,omitempty" db:"phone"`
	Address sql.NullString `json:"address,omitempty" db:"address"`

	// First day the customer appeared in the books
	RegisteredAt civil.Date `json:"registered_at" db:"registered_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
