// internal/service/route/route.go
package route

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gryphathie/KombuchaApp/internal/domain/route"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type RouteService struct {
	routeRepo    *postgres.RouteRepository
	customerRepo *postgres.CustomerRepository
	logger       *zap.Logger
}

func NewRouteService(routeRepo *postgres.RouteRepository, customerRepo *postgres.CustomerRepository, logger *zap.Logger) *RouteService {
	return &RouteService{
		routeRepo:    routeRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateRoute saves a delivery run. The customer order is significant and
// kept as given.
func (s *RouteService) CreateRoute(ctx context.Context, req *route.CreateRouteRequest) (*route.Route, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", xerrors.ErrInvalidInput)
	}

	if err := s.checkCustomers(ctx, req.CustomerIDs); err != nil {
		return nil, err
	}

	rt := &route.Route{
		ID:          ulid.Make().String(),
		Name:        name,
		Notes:       sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		CustomerIDs: pq.StringArray(req.CustomerIDs),
	}

	if err := s.routeRepo.Create(ctx, rt); err != nil {
		s.logger.Error("failed to create route", zap.Error(err))
		return nil, err
	}

	s.logger.Info("route created",
		zap.String("route_id", rt.ID),
		zap.String("name", rt.Name),
		zap.Int("stops", len(rt.CustomerIDs)),
	)

	return rt, nil
}

// GetRoute retrieves a route by ID.
func (s *RouteService) GetRoute(ctx context.Context, id string) (*route.Route, error) {
	return s.routeRepo.FindByID(ctx, id)
}

// ListRoutes retrieves all routes.
func (s *RouteService) ListRoutes(ctx context.Context) (*route.RouteListResponse, error) {
	routes, err := s.routeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	return &route.RouteListResponse{Routes: routes, Total: len(routes)}, nil
}

// UpdateRoute applies the non-nil fields of req.
func (s *RouteService) UpdateRoute(ctx context.Context, id string, req *route.UpdateRouteRequest) (*route.Route, error) {
	rt, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", xerrors.ErrInvalidInput)
		}
		rt.Name = name
	}
	if req.Notes != nil {
		rt.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}
	if req.CustomerIDs != nil {
		if err := s.checkCustomers(ctx, req.CustomerIDs); err != nil {
			return nil, err
		}
		rt.CustomerIDs = pq.StringArray(req.CustomerIDs)
	}

	if err := s.routeRepo.Update(ctx, rt); err != nil {
		s.logger.Error("failed to update route", zap.String("route_id", id), zap.Error(err))
		return nil, err
	}

	return rt, nil
}

// DeleteRoute removes a route.
func (s *RouteService) DeleteRoute(ctx context.Context, id string) error {
	if err := s.routeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("route deleted", zap.String("route_id", id))
	return nil
}

func (s *RouteService) checkCustomers(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
			return fmt.Errorf("route customer %s: %w", id, err)
		}
	}
	return nil
}
