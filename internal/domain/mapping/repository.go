package mapping

import (
	"context"

	"github.com/google/uuid"
)

// DeliveryMappingRepository defines the interface for mapping persistence.
// The allocation and reversal methods are transactional: the remaining
// quantity is re-validated and any credit ledger entries are posted in the
// same database transaction as the mapping row.
type DeliveryMappingRepository interface {
	// FindByID finds a mapping by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryMapping, error)

	// FindByDelivery finds all mappings for a delivery
	FindByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]DeliveryMapping, error)

	// SumMappedQuantity returns the total mapped quantity for one
	// (delivery, product) pair
	SumMappedQuantity(ctx context.Context, deliveryID, productID uuid.UUID) (int, error)

	// SumMappedByProduct returns mapped totals per product for a delivery
	SumMappedByProduct(ctx context.Context, deliveryID uuid.UUID) (map[uuid.UUID]int, error)

	// CreateWithAllocation persists the mapping after re-checking that the
	// quantity fits within deliveredQuantity minus already-mapped, and for
	// credit sales posts the debit against the customer's account, all in
	// one transaction. Returns ErrQuantityExceeded on over-allocation and
	// ErrCreditLimitExceeded when the debit would break the limit.
	CreateWithAllocation(ctx context.Context, m *DeliveryMapping, deliveredQuantity int) error

	// DeleteWithReversal removes the mapping and, if it was a credit sale,
	// posts the exact reversing entry in the same transaction. A second
	// delete returns ErrNotFound with no ledger effect.
	DeleteWithReversal(ctx context.Context, id, actorID uuid.UUID) (*DeliveryMapping, error)
}
