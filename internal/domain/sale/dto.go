// internal/domain/sale/dto.go
package sale

import "github.com/gryphathie/KombuchaApp/internal/pkg/civil"

type CreateSaleRequest struct {
	CustomerID string     `json:"customer_id" binding:"required"`
	Date       civil.Date `json:"date" binding:"required"`
	Items      []Item     `json:"items" binding:"required,min=1"`
	TotalCents int64      `json:"total_cents" binding:"min=0"`
	Status     Status     `json:"status"`
}

type UpdateSaleRequest struct {
	CustomerID *string     `json:"customer_id"`
	Date       *civil.Date `json:"date"`
	Items      []Item      `json:"items"`
	TotalCents *int64      `json:"total_cents" binding:"omitempty,min=0"`
	Status     *Status     `json:"status"`
}

// SaleListFilters narrows a listing to one calendar month (YYYY-MM).
type SaleListFilters struct {
	Month      string `form:"month"`
	CustomerID string `form:"customer_id"`
}

type SaleListResponse struct {
	Sales []Sale `json:"sales"`
	Total int    `json:"total"`
}

// CustomerMonthlySummary aggregates one customer's sales inside a month.
type CustomerMonthlySummary struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	SaleCount    int    `json:"sale_count"`
	TotalUnits   int    `json:"total_units"`
	TotalCents   int64  `json:"total_cents"`
}

type MonthlySummaryResponse struct {
	Month     string                   `json:"month"`
	Customers []CustomerMonthlySummary `json:"customers"`
}
