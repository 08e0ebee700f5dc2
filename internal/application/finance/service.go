package finance

import (
	"context"
	"time"

	"github.com/gasflow/backend/internal/domain/finance"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FinanceService handles the income/expense ledger and its report
type FinanceService struct {
	entryRepo finance.IncomeExpenseRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(entryRepo finance.IncomeExpenseRepository) *FinanceService {
	return &FinanceService{entryRepo: entryRepo}
}

// CreateEntry records a ledger entry. Its category is resolved by
// (name, type) and created on first use. Callers posting on behalf of a
// delivery settlement mark the entry auto-posted.
func (s *FinanceService) CreateEntry(ctx context.Context, req CreateEntryRequest, actorID uuid.UUID) (*EntryResponse, error) {
	entry, err := finance.NewIncomeExpenseEntry(
		req.EntryDate,
		finance.EntryType(req.Type),
		req.CategoryName,
		req.Amount,
		req.PaymentMode,
		req.Remarks,
		req.LinkedDeliveryID,
		req.IsAutoPosted,
		actorID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveWithCategory(ctx, entry); err != nil {
		return nil, err
	}

	response := ToEntryResponse(entry)
	return &response, nil
}

// GetEntry retrieves one ledger entry
func (s *FinanceService) GetEntry(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToEntryResponse(entry)
	return &response, nil
}

// ListEntries retrieves ledger entries with pagination. Date bounds and the
// entry type arrive through filter.Filters.
func (s *FinanceService) ListEntries(ctx context.Context, filter shared.Filter) ([]EntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "entry_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	entries, err := s.entryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses, total, nil
}

// DeleteEntry removes a manual entry. Auto-posted entries cannot be deleted.
func (s *FinanceService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.entryRepo.Delete(ctx, id)
}

// SearchCategories returns category suggestions for autocomplete
func (s *FinanceService) SearchCategories(ctx context.Context, entryType string, search string) ([]CategoryResponse, error) {
	var typeFilter *finance.EntryType
	if entryType != "" {
		t := finance.EntryType(entryType)
		if !t.IsValid() {
			return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
		}
		typeFilter = &t
	}

	categories, err := s.entryRepo.SearchCategories(ctx, typeFilter, search)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(&c)
	}
	return responses, nil
}

// DailyReport aggregates income and expense totals per day over the range
func (s *FinanceService) DailyReport(ctx context.Context, from, to time.Time) ([]DailySummaryResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Start and end dates are required")
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE", "End date must not be before start date")
	}

	summaries, err := s.entryRepo.SummarizeByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]DailySummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ToDailySummaryResponse(s)
	}
	return responses, nil
}
