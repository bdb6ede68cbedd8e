// internal/domain/product/dto.go
package product

type CreateProductRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	PriceCents int64  `json:"price_cents" binding:"required,min=0"`
	PhotoURL   string `json:"photo_url" binding:"max=1000"`
}

type UpdateProductRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	PriceCents *int64  `json:"price_cents" binding:"omitempty,min=0"`
	PhotoURL   *string `json:"photo_url" binding:"omitempty,max=1000"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
