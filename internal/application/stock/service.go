package stock

import (
	"context"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// StockService handles stock register queries and manual mutations
type StockService struct {
	registerRepo stock.StockRegisterRepository
	productRepo  catalog.ProductRepository
}

// NewStockService creates a new StockService
func NewStockService(registerRepo stock.StockRegisterRepository, productRepo catalog.ProductRepository) *StockService {
	return &StockService{
		registerRepo: registerRepo,
		productRepo:  productRepo,
	}
}

// GetByProduct retrieves the balance row for a product
func (s *StockService) GetByProduct(ctx context.Context, productID uuid.UUID) (*StockEntryResponse, error) {
	entry, err := s.registerRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToStockEntryResponse(entry)
	return &response, nil
}

// List retrieves balance rows with pagination
func (s *StockService) List(ctx context.Context, filter shared.Filter) ([]StockEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "product_name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	entries, err := s.registerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.registerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToStockEntryResponse(&e)
	}
	return responses, total, nil
}

// Summary aggregates the register across all products
func (s *StockService) Summary(ctx context.Context) (*stock.StockSummary, error) {
	return s.registerRepo.Summary(ctx)
}

// ListTransactions retrieves stock log entries, newest first
func (s *StockService) ListTransactions(ctx context.Context, filter shared.Filter) ([]StockTransactionResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	transactions, err := s.registerRepo.FindTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockTransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = ToStockTransactionResponse(&tx)
	}
	return responses, nil
}

// Adjust applies a manual correction to one product's balances. Unlike the
// event-driven reconciliation this is a primary operation, so failures
// propagate to the caller.
func (s *StockService) Adjust(ctx context.Context, req AdjustStockRequest, actorID uuid.UUID) (*StockEntryResponse, error) {
	if req.FilledDelta == 0 && req.EmptyDelta == 0 && req.DamagedDelta == 0 && req.InFieldDelta == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment must change at least one balance")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	delta := stock.StockDelta{
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        stock.TransactionTypeAdjustment,
		Filled:      req.FilledDelta,
		Empty:       req.EmptyDelta,
		Damaged:     req.DamagedDelta,
		InField:     req.InFieldDelta,
		Remarks:     req.Remarks,
		ActorID:     actorID,
	}
	if err := s.registerRepo.ApplyDelta(ctx, delta); err != nil {
		return nil, err
	}

	return s.GetByProduct(ctx, req.ProductID)
}

// Initialize seeds a product's opening balances. Rejected once the product
// already has a balance row; corrections go through Adjust.
func (s *StockService) Initialize(ctx context.Context, req InitializeStockRequest, actorID uuid.UUID) (*StockEntryResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if _, err := s.registerRepo.FindByProduct(ctx, req.ProductID); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	delta := stock.StockDelta{
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        stock.TransactionTypeInitialize,
		Filled:      req.Filled,
		Empty:       req.Empty,
		Damaged:     req.Damaged,
		Remarks:     req.Remarks,
		ActorID:     actorID,
	}
	if err := s.registerRepo.ApplyDelta(ctx, delta); err != nil {
		return nil, err
	}

	return s.GetByProduct(ctx, req.ProductID)
}
