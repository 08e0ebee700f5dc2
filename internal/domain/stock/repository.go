package stock

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRegisterRepository defines the interface for the stock register.
// ApplyDelta is the single write path: it locks (or creates) the product's
// balance row, applies the delta, and appends the log entry in one
// transaction.
type StockRegisterRepository interface {
	// FindByProduct finds the balance row for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockEntry, error)

	// FindAll finds balance rows with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]StockEntry, error)

	// Save creates or updates a balance row
	Save(ctx context.Context, entry *StockEntry) error

	// ApplyDelta applies one stock mutation atomically: balance update plus
	// appended StockTransaction. Creates the balance row if missing.
	ApplyDelta(ctx context.Context, delta StockDelta) error

	// HasTransaction reports whether a log entry already exists for the
	// (type, reference, product) triple. Used for idempotent reconciliation.
	HasTransaction(ctx context.Context, txType TransactionType, referenceID, productID uuid.UUID) (bool, error)

	// FindTransactions returns log entries with filtering and pagination
	FindTransactions(ctx context.Context, filter shared.Filter) ([]StockTransaction, error)

	// Summary aggregates the register across all products
	Summary(ctx context.Context) (*StockSummary, error)

	// Count counts balance rows matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReconciliationTaskRepository defines the interface for pending
// reconciliation gaps
type ReconciliationTaskRepository interface {
	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReconciliationTask, error)

	// FindPending returns unresolved tasks, oldest first
	FindPending(ctx context.Context, filter shared.Filter) ([]ReconciliationTask, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *ReconciliationTask) error

	// CountPending counts unresolved tasks
	CountPending(ctx context.Context) (int64, error)
}
