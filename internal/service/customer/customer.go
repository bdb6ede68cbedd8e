// internal/service/customer/customer.go
package customer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gryphathie/KombuchaApp/internal/domain/customer"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type CustomerService struct {
	customerRepo *postgres.CustomerRepository
	clock        civil.Clock
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *postgres.CustomerRepository, clock civil.Clock, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		clock:        clock,
		logger:       logger,
	}
}

// CreateCustomer registers a new customer. RegisteredAt defaults to today
// in the business calendar when omitted.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", xerrors.ErrInvalidInput)
	}

	registeredAt := req.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = s.clock.Today()
	}

	c := &customer.Customer{
		ID:           ulid.Make().String(),
		Name:         name,
		Phone:        sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Address:      sql.NullString{String: req.Address, Valid: req.Address != ""},
		RegisteredAt: registeredAt,
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", c.ID),
		zap.String("name", c.Name),
	)

	return c, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// ListCustomers retrieves all customers.
func (s *CustomerService) ListCustomers(ctx context.Context) (*customer.CustomerListResponse, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return &customer.CustomerListResponse{
		Customers: customers,
		Total:     len(customers),
	}, nil
}

// UpdateCustomer applies the non-nil fields of req.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", xerrors.ErrInvalidInput)
		}
		c.Name = name
	}
	if req.Phone != nil {
		c.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Address != nil {
		c.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.String("customer_id", id), zap.Error(err))
		return nil, err
	}

	return c, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
