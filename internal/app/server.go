// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/config"
	"github.com/gryphathie/KombuchaApp/internal/db"
	authHandler "github.com/gryphathie/KombuchaApp/internal/handlers/auth"
	customerHandler "github.com/gryphathie/KombuchaApp/internal/handlers/customer"
	productHandler "github.com/gryphathie/KombuchaApp/internal/handlers/product"
	reminderHandler "github.com/gryphathie/KombuchaApp/internal/handlers/reminder"
	routeHandler "github.com/gryphathie/KombuchaApp/internal/handlers/route"
	saleHandler "github.com/gryphathie/KombuchaApp/internal/handlers/sale"
	wsHandler "github.com/gryphathie/KombuchaApp/internal/handlers/websocket"
	"github.com/gryphathie/KombuchaApp/internal/middleware"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
	"github.com/gryphathie/KombuchaApp/internal/pkg/token"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"
	authUsecase "github.com/gryphathie/KombuchaApp/internal/service/auth"
	customersvc "github.com/gryphathie/KombuchaApp/internal/service/customer"
	productsvc "github.com/gryphathie/KombuchaApp/internal/service/product"
	remindersvc "github.com/gryphathie/KombuchaApp/internal/service/reminder"
	routesvc "github.com/gryphathie/KombuchaApp/internal/service/route"
	salesvc "github.com/gryphathie/KombuchaApp/internal/service/sale"
	"github.com/gryphathie/KombuchaApp/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- Business clock -----
	clock, err := civil.NewZoneClock(s.cfg.Timezone)
	if err != nil {
		return err
	}

	// ----- Token Manager -----
	tokens, err := token.NewManager(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	statusRepo := postgres.NewReminderStatusRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(userRepo, tokens, logger)
	customerService := customersvc.NewCustomerService(customerRepo, clock, logger)
	productService := productsvc.NewProductService(productRepo, logger)
	saleService := salesvc.NewSaleService(saleRepo, customerRepo, logger)
	routeService := routesvc.NewRouteService(routeRepo, customerRepo, logger)
	reminderService := remindersvc.NewReminderService(
		saleRepo,
		customerRepo,
		statusRepo,
		clock,
		s.cfg.StatusPolicy,
		redisClient,
		hub,
		logger,
	)

	// ----- Bootstrap operator -----
	if err := s.ensureOperator(authService); err != nil {
		logger.Error("failed to ensure bootstrap operator", zap.Error(err))
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService),
		CustomerHandler: customerHandler.NewCustomerHandler(customerService),
		ProductHandler:  productHandler.NewProductHandler(productService),
		SaleHandler:     saleHandler.NewSaleHandler(saleService),
		RouteHandler:    routeHandler.NewRouteHandler(routeService),
		ReminderHandler: reminderHandler.NewReminderHandler(reminderService),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, authService, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		corsMiddleware(s.cfg.AllowedOrigins),
	)

	SetupRouter(s.engine, handlers)

	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// ensureOperator creates the bootstrap operator account on first start. Skips
// silently when no credentials are configured.
func (s *Server) ensureOperator(authService *authUsecase.AuthService) error {
	if s.cfg.OperatorEmail == "" || s.cfg.OperatorPassword == "" {
		s.logger.Warn("OPERATOR_EMAIL/OPERATOR_PASSWORD not set, skipping bootstrap operator")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return authService.EnsureOperatorExists(ctx, s.cfg.OperatorEmail, s.cfg.OperatorPassword, s.cfg.OperatorName)
}
