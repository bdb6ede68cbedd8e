// internal/handlers/sale/sale_handler.go
package sale

import (
	"net/http"

	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/response"
	service "github.com/gryphathie/KombuchaApp/internal/service/sale"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService *service.SaleService
}

func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// CreateSale records a sale.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req sale.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.saleService.CreateSale(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create sale", err)
		return
	}

	response.Success(c, http.StatusCreated, "sale recorded successfully", result)
}

// GetSale retrieves a sale by ID.
func (h *SaleHandler) GetSale(c *gin.Context) {
	result, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "sale not found", err)
		return
	}

	response.Success(c, http.StatusOK, "sale retrieved", result)
}

// ListSales retrieves sales, optionally filtered by ?month=YYYY-MM and
// ?customer_id=.
func (h *SaleHandler) ListSales(c *gin.Context) {
	filters := &sale.SaleListFilters{
		Month:      c.Query("month"),
		CustomerID: c.Query("customer_id"),
	}

	result, err := h.saleService.ListSales(c.Request.Context(), filters)
	if err != nil {
		response.FromError(c, "failed to list sales", err)
		return
	}

	response.Success(c, http.StatusOK, "sales retrieved", result)
}

// MonthlySummary aggregates one month's sales per customer.
func (h *SaleHandler) MonthlySummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.Error(c, http.StatusBadRequest, "month query parameter is required", nil)
		return
	}

	result, err := h.saleService.MonthlySummary(c.Request.Context(), month)
	if err != nil {
		response.FromError(c, "failed to build monthly summary", err)
		return
	}

	response.Success(c, http.StatusOK, "monthly summary built", result)
}

// UpdateSale applies a partial update to a sale.
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	var req sale.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.saleService.UpdateSale(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update sale", err)
		return
	}

	response.Success(c, http.StatusOK, "sale updated", result)
}

// DeleteSale removes a sale from the ledger.
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete sale", err)
		return
	}

	response.Success(c, http.StatusOK, "sale deleted", nil)
}
