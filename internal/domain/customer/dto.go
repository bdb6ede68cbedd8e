// internal/domain/customer/dto.go
package customer

import "github.com/gryphathie/KombuchaApp/internal/pkg/civil"

type CreateCustomerRequest struct {
	Name         string     `json:"name" binding:"required,max=255"`
	Phone        string     `json:"phone" binding:"max=30"`
	Address      string     `json:"address" binding:"max=500"`
	RegisteredAt civil.Date `json:"registered_at"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
	Total     int        `json:"total"`
}
