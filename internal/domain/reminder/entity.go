// internal/domain/reminder/entity.go
package reminder

import (
	"fmt"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusDismissed Status = "dismissed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusDismissed:
		return true
	}
	return false
}

// CanTransitionTo encodes the workflow state machine: pending moves to
// contacted or dismissed, and either of those reactivates back to pending.
// There is no direct contacted <-> dismissed edge.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusContacted || to == StatusDismissed
	case StatusContacted, StatusDismissed:
		return to == StatusPending
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Reminder is derived from a customer's most recent sale and never
// persisted on its own; only the workflow status/notes survive a reload.
type Reminder struct {
	Identity string `json:"identity"`

	CustomerID      string `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`

	SourceSaleID   string     `json:"source_sale_id"`
	SourceSaleDate civil.Date `json:"source_sale_date"`

	TotalUnits    int        `json:"total_units"`
	WaitDays      int        `json:"wait_days"`
	DueDate       civil.Date `json:"due_date"`
	IsDue         bool       `json:"is_due"`
	OverdueDays   int        `json:"overdue_days"`
	RemainingDays int        `json:"remaining_days"`

	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Identity builds the composite key correlating a derived reminder with its
// persisted status record. It changes whenever the customer makes a newer
// purchase, superseding the previous record.
func Identity(customerID, saleID string, dueDate civil.Date) string {
	return fmt.Sprintf("%s_%s_%s", customerID, saleID, dueDate)
}

// StatusRecord is the persisted human-workflow overlay for one reminder.
type StatusRecord struct {
	Identity   string    `json:"identity" db:"identity"`
	CustomerID string    `json:"customer_id" db:"customer_id"`
	Status     Status    `json:"status" db:"status"`
	Notes      string    `json:"notes" db:"notes"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Stats are the badge counts shown next to the reminder list and bell.
// Pending + Contacted + Dismissed always equals Total.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Upcoming  int `json:"upcoming"`
	Contacted int `json:"contacted"`
	Dismissed int `json:"dismissed"`
}

// CalendarCell is one day of the month grid. A reminder or sale appears in
// exactly one cell.
type CalendarCell struct {
	Date      civil.Date  `json:"date"`
	InMonth   bool        `json:"in_month"`
	IsToday   bool        `json:"is_today"`
	Reminders []Reminder  `json:"reminders"`
	Sales     []sale.Sale `json:"sales"`
}

type Calendar struct {
	Month string         `json:"month"`
	Cells []CalendarCell `json:"cells"`
}

// StatusPolicy decides what happens to an operator's status when a new sale
// supersedes the reminder it was recorded against.
type StatusPolicy string

const (
	// PolicyReset forgets the old status: each purchase cycle starts a
	// fresh pending reminder. Matches the historical behaviour.
	PolicyReset StatusPolicy = "reset"
	// PolicyCarryForward reuses the customer's most recent status record
	// when no record matches the current identity.
	PolicyCarryForward StatusPolicy = "carry-forward"
)
