package delivery

import (
	"context"
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DailyDeliveryRepository defines the interface for daily delivery persistence
type DailyDeliveryRepository interface {
	// FindByID finds a delivery by ID including drivers, items, and actuals
	FindByID(ctx context.Context, id uuid.UUID) (*DailyDelivery, error)

	// FindAll finds deliveries with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]DailyDelivery, error)

	// FindByDateRange finds deliveries within a date range
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]DailyDelivery, error)

	// FindByVehicle finds deliveries for a vehicle
	FindByVehicle(ctx context.Context, vehicleID uuid.UUID, filter shared.Filter) ([]DailyDelivery, error)

	// Save creates or updates a delivery with its drivers, items, and actuals
	Save(ctx context.Context, d *DailyDelivery) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, d *DailyDelivery) error

	// Count counts deliveries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
