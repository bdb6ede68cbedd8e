// internal/app/router.go
package app

import (
	"time"

	authHandler "github.com/gryphathie/KombuchaApp/internal/handlers/auth"
	customerHandler "github.com/gryphathie/KombuchaApp/internal/handlers/customer"
	productHandler "github.com/gryphathie/KombuchaApp/internal/handlers/product"
	reminderHandler "github.com/gryphathie/KombuchaApp/internal/handlers/reminder"
	routeHandler "github.com/gryphathie/KombuchaApp/internal/handlers/route"
	saleHandler "github.com/gryphathie/KombuchaApp/internal/handlers/sale"
	wsHandler "github.com/gryphathie/KombuchaApp/internal/handlers/websocket"
	"github.com/gryphathie/KombuchaApp/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CustomerHandler *customerHandler.CustomerHandler
	ProductHandler  *productHandler.ProductHandler
	SaleHandler     *saleHandler.SaleHandler
	RouteHandler    *routeHandler.RouteHandler
	ReminderHandler *reminderHandler.ReminderHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Products ====================
	products := api.Group("/products")
	products.Use(h.AuthMiddleware.Auth())
	{
		products.GET("", h.ProductHandler.ListProducts)
		products.GET("/:id", h.ProductHandler.GetProduct)
		products.POST("", h.ProductHandler.CreateProduct)
		products.PUT("/:id", h.ProductHandler.UpdateProduct)
		products.DELETE("/:id", h.ProductHandler.DeleteProduct)
	}

	// ==================== Sales ====================
	sales := api.Group("/sales")
	sales.Use(h.AuthMiddleware.Auth())
	{
		sales.GET("", h.SaleHandler.ListSales)
		sales.GET("/summary", h.SaleHandler.MonthlySummary)
		sales.GET("/:id", h.SaleHandler.GetSale)
		sales.POST("", h.SaleHandler.CreateSale)
		sales.PUT("/:id", h.SaleHandler.UpdateSale)
		sales.DELETE("/:id", h.SaleHandler.DeleteSale)
	}

	// ==================== Delivery Routes ====================
	routes := api.Group("/routes")
	routes.Use(h.AuthMiddleware.Auth())
	{
		routes.GET("", h.RouteHandler.ListRoutes)
		routes.GET("/:id", h.RouteHandler.GetRoute)
		routes.POST("", h.RouteHandler.CreateRoute)
		routes.PUT("/:id", h.RouteHandler.UpdateRoute)
		routes.DELETE("/:id", h.RouteHandler.DeleteRoute)
	}

	// ==================== Reminders ====================
	reminders := api.Group("/reminders")
	reminders.Use(h.AuthMiddleware.Auth())
	{
		reminders.GET("", h.ReminderHandler.ListReminders)
		reminders.GET("/stats", h.ReminderHandler.Stats)
		reminders.GET("/calendar", h.ReminderHandler.Calendar)
		reminders.PUT("/:identity/status", h.ReminderHandler.SetStatus)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
