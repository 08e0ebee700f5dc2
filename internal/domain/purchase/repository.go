package purchase

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseEntryRepository defines the interface for purchase persistence
type PurchaseEntryRepository interface {
	// FindByID finds a purchase entry by ID including line items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseEntry, error)

	// FindAll finds purchase entries with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseEntry, error)

	// FindByVendor finds purchase entries for a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]PurchaseEntry, error)

	// Save creates or updates a purchase entry with its line items
	Save(ctx context.Context, p *PurchaseEntry) error

	// Count counts purchase entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
