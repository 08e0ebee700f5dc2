package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gasflow/backend/internal/domain/credit"
	"github.com/gasflow/backend/internal/domain/mapping"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryMappingRepository implements DeliveryMappingRepository using
// GORM. Allocation and reversal run in a single database transaction; the
// delivery row is locked to serialize concurrent allocations against the
// same delivered quantity.
type GormDeliveryMappingRepository struct {
	db *gorm.DB
}

// NewGormDeliveryMappingRepository creates a new GormDeliveryMappingRepository
func NewGormDeliveryMappingRepository(db *gorm.DB) *GormDeliveryMappingRepository {
	return &GormDeliveryMappingRepository{db: db}
}

// FindByID finds a mapping by ID
func (r *GormDeliveryMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*mapping.DeliveryMapping, error) {
	var m mapping.DeliveryMapping
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByDelivery finds all mappings for a delivery
func (r *GormDeliveryMappingRepository) FindByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]mapping.DeliveryMapping, error) {
	var mappings []mapping.DeliveryMapping
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Order("created_at ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// SumMappedQuantity returns the total mapped quantity for one
// (delivery, product) pair
func (r *GormDeliveryMappingRepository) SumMappedQuantity(ctx context.Context, deliveryID, productID uuid.UUID) (int, error) {
	return r.sumMapped(r.db.WithContext(ctx), deliveryID, productID)
}

// SumMappedByProduct returns mapped totals per product for a delivery
func (r *GormDeliveryMappingRepository) SumMappedByProduct(ctx context.Context, deliveryID uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []struct {
		ProductID uuid.UUID
		Total     int
	}
	if err := r.db.WithContext(ctx).
		Model(&mapping.DeliveryMapping{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Where("delivery_id = ?", deliveryID).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		totals[row.ProductID] = row.Total
	}
	return totals, nil
}

// CreateWithAllocation persists the mapping after re-checking that the
// quantity fits within deliveredQuantity minus already-mapped, and for
// credit sales posts the debit against the customer's account, all in one
// transaction
func (r *GormDeliveryMappingRepository) CreateWithAllocation(ctx context.Context, m *mapping.DeliveryMapping, deliveredQuantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the delivery row so concurrent allocations against the same
		// delivered quantity run one at a time. Scan never returns
		// ErrRecordNotFound, so an empty result is the not-found signal.
		var lockedID string
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Table("daily_deliveries").
			Select("id").
			Where("id = ?", m.DeliveryID).
			Scan(&lockedID).Error; err != nil {
			return err
		}
		if lockedID == "" {
			return shared.ErrNotFound
		}

		mapped, err := r.sumMapped(tx, m.DeliveryID, m.ProductID)
		if err != nil {
			return err
		}
		if mapped+m.Quantity > deliveredQuantity {
			return shared.ErrQuantityExceeded
		}

		if err := tx.Create(m).Error; err != nil {
			return err
		}

		if !m.IsCreditSale {
			return nil
		}
		return r.postDebit(tx, m)
	})
}

// postDebit locks the customer's credit account, applies the debit, and
// appends the ledger entry
func (r *GormDeliveryMappingRepository) postDebit(tx *gorm.DB, m *mapping.DeliveryMapping) error {
	var account credit.CreditAccount
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "customer_id = ?", m.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewDomainError("NO_CREDIT_ACCOUNT", "Customer has no credit account")
		}
		return err
	}

	if err := account.Debit(m.Amount, m.CreatedBy); err != nil {
		return err
	}
	if err := tx.Save(&account).Error; err != nil {
		return err
	}

	mappingID := m.ID
	entry, err := credit.NewCreditTransaction(
		m.CustomerID,
		credit.TransactionTypeDebit,
		m.Amount,
		m.InvoiceNumber,
		&mappingID,
		fmt.Sprintf("Credit sale: %d x %s", m.Quantity, m.ProductName),
		m.CreatedBy,
	)
	if err != nil {
		return err
	}
	return tx.Create(entry).Error
}

// DeleteWithReversal removes the mapping and, if it was a credit sale, posts
// the exact reversing entry in the same transaction. A second delete returns
// ErrNotFound with no ledger effect.
func (r *GormDeliveryMappingRepository) DeleteWithReversal(ctx context.Context, id, actorID uuid.UUID) (*mapping.DeliveryMapping, error) {
	var m mapping.DeliveryMapping
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		result := tx.Delete(&mapping.DeliveryMapping{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if !m.IsCreditSale {
			return nil
		}

		var account credit.CreditAccount
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, "customer_id = ?", m.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewDomainError("NO_CREDIT_ACCOUNT", "Customer has no credit account")
			}
			return err
		}

		if err := account.ReverseDebit(m.Amount, actorID); err != nil {
			return err
		}
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		mappingID := m.ID
		entry, err := credit.NewCreditTransaction(
			m.CustomerID,
			credit.TransactionTypeReversal,
			m.Amount,
			m.InvoiceNumber,
			&mappingID,
			fmt.Sprintf("Reversal of credit sale: %d x %s", m.Quantity, m.ProductName),
			actorID,
		)
		if err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// sumMapped totals mapped quantity for a (delivery, product) pair
func (r *GormDeliveryMappingRepository) sumMapped(tx *gorm.DB, deliveryID, productID uuid.UUID) (int, error) {
	var total int
	if err := tx.
		Model(&mapping.DeliveryMapping{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("delivery_id = ? AND product_id = ?", deliveryID, productID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure GormDeliveryMappingRepository implements DeliveryMappingRepository
var _ mapping.DeliveryMappingRepository = (*GormDeliveryMappingRepository)(nil)
