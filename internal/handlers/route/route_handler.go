// internal/handlers/route/route_handler.go
package route

import (
	"net/http"

	"github.com/gryphathie/KombuchaApp/internal/domain/route"
	"github.com/gryphathie/KombuchaApp/internal/pkg/response"
	service "github.com/gryphathie/KombuchaApp/internal/service/route"

	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	routeService *service.RouteService
}

func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
	}
}

// CreateRoute saves a delivery run.
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req route.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.routeService.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create route", err)
		return
	}

	response.Success(c, http.StatusCreated, "route created successfully", result)
}

// GetRoute retrieves a route by ID.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	result, err := h.routeService.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "route not found", err)
		return
	}

	response.Success(c, http.StatusOK, "route retrieved", result)
}

// ListRoutes retrieves all routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	result, err := h.routeService.ListRoutes(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list routes", err)
		return
	}

	response.Success(c, http.StatusOK, "routes retrieved", result)
}

// UpdateRoute applies a partial update to a route.
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	var req route.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.routeService.UpdateRoute(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update route", err)
		return
	}

	response.Success(c, http.StatusOK, "route updated", result)
}

// DeleteRoute removes a route.
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	if err := h.routeService.DeleteRoute(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete route", err)
		return
	}

	response.Success(c, http.StatusOK, "route deleted", nil)
}
