// internal/handlers/product/product_handler.go
package product

import (
	"net/http"

	"github.com/gryphathie/KombuchaApp/internal/domain/product"
	"github.com/gryphathie/KombuchaApp/internal/pkg/response"
	service "github.com/gryphathie/KombuchaApp/internal/service/product"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProduct adds a kombucha variety to the catalog.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create product", err)
		return
	}

	response.Success(c, http.StatusCreated, "product created successfully", result)
}

// GetProduct retrieves a product by ID.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	result, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "product not found", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", result)
}

// ListProducts retrieves the catalog.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	result, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", result)
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update product", err)
		return
	}

	response.Success(c, http.StatusOK, "product updated", result)
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete product", err)
		return
	}

	response.Success(c, http.StatusOK, "product deleted", nil)
}
