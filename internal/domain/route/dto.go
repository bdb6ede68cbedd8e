// internal/domain/route/dto.go
package route

type CreateRouteRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Notes       string   `json:"notes" binding:"max=1000"`
	CustomerIDs []string `json:"customer_ids"`
}

type UpdateRouteRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Notes       *string  `json:"notes" binding:"omitempty,max=1000"`
	CustomerIDs []string `json:"customer_ids"`
}

type RouteListResponse struct {
	Routes []Route `json:"routes"`
	Total  int     `json:"total"`
}
