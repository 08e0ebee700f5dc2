package partner

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository provides the customer lookups the core flow needs
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, c *Customer) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DriverRepository provides the driver lookups the core flow needs
type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)
	FindActive(ctx context.Context) ([]Driver, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, d *Driver) error
}

// VehicleRepository provides the vehicle lookups the core flow needs
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindActive(ctx context.Context) ([]Vehicle, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, v *Vehicle) error
}

// VendorRepository provides the vendor lookups the core flow needs
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, v *Vendor) error
}
