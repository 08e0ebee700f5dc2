package finance

import (
	"context"
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IncomeExpenseRepository defines the interface for the money ledger.
// SaveWithCategory resolves the entry's category by (name, type), creating
// it on first use, inside the transaction that inserts the entry.
type IncomeExpenseRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*IncomeExpenseEntry, error)

	// FindAll finds entries with filtering and pagination. Date bounds and
	// entry type come through filter.Filters ("from", "to", "type").
	FindAll(ctx context.Context, filter shared.Filter) ([]IncomeExpenseEntry, error)

	// SaveWithCategory resolves or creates the category and inserts the
	// entry in one transaction
	SaveWithCategory(ctx context.Context, entry *IncomeExpenseEntry) error

	// Delete removes an entry. Auto-posted entries cannot be deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchCategories returns categories matching the type and name prefix
	SearchCategories(ctx context.Context, entryType *EntryType, search string) ([]Category, error)

	// SummarizeByDay aggregates income and expense totals per day over the
	// date range, inclusive
	SummarizeByDay(ctx context.Context, from, to time.Time) ([]DailySummary, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
