// internal/service/sale/sale.go
package sale

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

type SaleService struct {
	saleRepo     *postgres.SaleRepository
	customerRepo *postgres.CustomerRepository
	logger       *zap.Logger
}

func NewSaleService(saleRepo *postgres.SaleRepository, customerRepo *postgres.CustomerRepository, logger *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateSale records a sale. The total comes from the caller (the price
// calculator lives client-side); when absent it falls back to the line-item
// sum.
func (s *SaleService) CreateSale(ctx context.Context, req *sale.CreateSaleRequest) (*sale.Sale, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: sale date is required", xerrors.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale needs at least one item", xerrors.ErrInvalidInput)
	}
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, xerrors.Wrap(err, "sale customer")
	}

	status := req.Status
	if status == "" {
		status = sale.StatusPending
	}
	if status != sale.StatusPending && status != sale.StatusCompleted {
		return nil, fmt.Errorf("%w: unknown sale status %q", xerrors.ErrInvalidInput, status)
	}

	total := req.TotalCents
	if total == 0 {
		total = itemTotal(req.Items)
	}

	rec := &sale.Sale{
		ID:         ulid.Make().String(),
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Items:      req.Items,
		TotalCents: total,
		Status:     status,
	}

	if err := s.saleRepo.Create(ctx, rec); err != nil {
		s.logger.Error("failed to create sale", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("sale_id", rec.ID),
		zap.String("customer_id", rec.CustomerID),
		zap.String("date", rec.Date.String()),
		zap.Int("units", rec.TotalUnits()),
	)

	return rec, nil
}

// GetSale retrieves a sale by ID.
func (s *SaleService) GetSale(ctx context.Context, id string) (*sale.Sale, error) {
	return s.saleRepo.FindByID(ctx, id)
}

// ListSales retrieves sales, optionally narrowed by month and customer.
func (s *SaleService) ListSales(ctx context.Context, filters *sale.SaleListFilters) (*sale.SaleListResponse, error) {
	var (
		sales []sale.Sale
		err   error
	)

	if filters.Month != "" {
		if !monthPattern.MatchString(filters.Month) {
			return nil, fmt.Errorf("%w: month must be YYYY-MM", xerrors.ErrInvalidInput)
		}
		sales, err = s.saleRepo.ListByMonth(ctx, filters.Month, filters.CustomerID)
	} else {
		sales, err = s.saleRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return &sale.SaleListResponse{Sales: sales, Total: len(sales)}, nil
}

// MonthlySummary aggregates one month's sales per customer: how many sales,
// units and revenue each customer accounted for.
func (s *SaleService) MonthlySummary(ctx context.Context, month string) (*sale.MonthlySummaryResponse, error) {
	if !monthPattern.MatchString(month) {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", xerrors.ErrInvalidInput)
	}

	sales, err := s.saleRepo.ListByMonth(ctx, month, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	byCustomer := make(map[string]*sale.CustomerMonthlySummary)
	for _, rec := range sales {
		summary, ok := byCustomer[rec.CustomerID]
		if !ok {
			summary = &sale.CustomerMonthlySummary{
				CustomerID:   rec.CustomerID,
				CustomerName: names[rec.CustomerID],
			}
			byCustomer[rec.CustomerID] = summary
		}
		summary.SaleCount++
		summary.TotalUnits += rec.TotalUnits()
		summary.TotalCents += rec.TotalCents
	}

	result := make([]sale.CustomerMonthlySummary, 0, len(byCustomer))
	for _, summary := range byCustomer {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalCents != result[j].TotalCents {
			return result[i].TotalCents > result[j].TotalCents
		}
		return result[i].CustomerID < result[j].CustomerID
	})

	return &sale.MonthlySummaryResponse{Month: month, Customers: result}, nil
}

// UpdateSale applies the non-nil fields of req.
func (s *SaleService) UpdateSale(ctx context.Context, id string, req *sale.UpdateSaleRequest) (*sale.Sale, error) {
	rec, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			return nil, xerrors.Wrap(err, "sale customer")
		}
		rec.CustomerID = *req.CustomerID
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, fmt.Errorf("%w: sale date cannot be empty", xerrors.ErrInvalidInput)
		}
		rec.Date = *req.Date
	}
	if req.Items != nil {
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: sale needs at least one item", xerrors.ErrInvalidInput)
		}
		rec.Items = req.Items
		rec.TotalCents = itemTotal(req.Items)
	}
	if req.TotalCents != nil {
		rec.TotalCents = *req.TotalCents
	}
	if req.Status != nil {
		if *req.Status != sale.StatusPending && *req.Status != sale.StatusCompleted {
			return nil, fmt.Errorf("%w: unknown sale status %q", xerrors.ErrInvalidInput, *req.Status)
		}
		rec.Status = *req.Status
	}

	if err := s.saleRepo.Update(ctx, rec); err != nil {
		s.logger.Error("failed to update sale", zap.String("sale_id", id), zap.Error(err))
		return nil, err
	}

	return rec, nil
}

// DeleteSale removes a sale from the ledger.
func (s *SaleService) DeleteSale(ctx context.Context, id string) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("sale deleted", zap.String("sale_id", id))
	return nil
}

func itemTotal(items []sale.Item) int64 {
	var total int64
	for _, it := range items {
		if it.Quantity > 0 && it.UnitPriceCents > 0 {
			total += int64(it.Quantity) * it.UnitPriceCents
		}
	}
	return total
}
