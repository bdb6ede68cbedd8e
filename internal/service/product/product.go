// internal/service/product/product.go
package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gryphathie/KombuchaApp/internal/domain/product"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type ProductService struct {
	productRepo *postgres.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo *postgres.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateProduct adds a kombucha variety to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", xerrors.ErrInvalidInput)
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", xerrors.ErrInvalidInput)
	}

	p := &product.Product{
		ID:         ulid.Make().String(),
		Name:       name,
		PriceCents: req.PriceCents,
		PhotoURL:   sql.NullString{String: req.PhotoURL, Valid: req.PhotoURL != ""},
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
	)

	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListProducts retrieves the whole catalog.
func (s *ProductService) ListProducts(ctx context.Context) (*product.ProductListResponse, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &product.ProductListResponse{
		Products: products,
		Total:    len(products),
	}, nil
}

// UpdateProduct applies the non-nil fields of req.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *product.UpdateProductRequest) (*product.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", xerrors.ErrInvalidInput)
		}
		p.Name = name
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", xerrors.ErrInvalidInput)
		}
		p.PriceCents = *req.PriceCents
	}
	if req.PhotoURL != nil {
		p.PhotoURL = sql.NullString{String: *req.PhotoURL, Valid: *req.PhotoURL != ""}
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	return p, nil
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}
