package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gasflow/backend/internal/domain/mapping"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestMapping(t *testing.T, deliveryID uuid.UUID, quantity int, creditSale bool) *mapping.DeliveryMapping {
	mode := mapping.PaymentModeCash
	if creditSale {
		mode = mapping.PaymentModeCredit
	}
	m, err := mapping.NewDeliveryMapping(
		deliveryID, uuid.New(), "19kg Commercial", uuid.New(), "Hotel Sunrise",
		quantity, decimal.NewFromInt(1500), creditSale, mode, "INV-1001", "", uuid.New(),
	)
	require.NoError(t, err)
	return m
}

func TestGormDeliveryMappingRepository_CreateWithAllocation(t *testing.T) {
	t.Run("rejects over-allocation without inserting", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormDeliveryMappingRepository(db)

		deliveryID := uuid.New()
		m := newTestMapping(t, deliveryID, 4, false)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM "daily_deliveries" WHERE id = \$1 FOR UPDATE`).
			WithArgs(deliveryID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(deliveryID))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "delivery_mappings" WHERE delivery_id = \$1 AND product_id = \$2`).
			WithArgs(deliveryID, m.ProductID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
		mock.ExpectRollback()

		err := repo.CreateWithAllocation(context.Background(), m, 6)

		assert.ErrorIs(t, err, shared.ErrQuantityExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown delivery", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormDeliveryMappingRepository(db)

		deliveryID := uuid.New()
		m := newTestMapping(t, deliveryID, 2, false)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM "daily_deliveries" WHERE id = \$1 FOR UPDATE`).
			WithArgs(deliveryID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.CreateWithAllocation(context.Background(), m, 6)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryMappingRepository_DeleteWithReversal(t *testing.T) {
	t.Run("second delete returns ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormDeliveryMappingRepository(db)

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "delivery_mappings" WHERE id = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		m, err := repo.DeleteWithReversal(context.Background(), id, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, m)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryMappingRepository_SumMappedQuantity(t *testing.T) {
	t.Run("returns zero when nothing is mapped", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormDeliveryMappingRepository(db)

		deliveryID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "delivery_mappings" WHERE delivery_id = \$1 AND product_id = \$2`).
			WithArgs(deliveryID, productID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		total, err := repo.SumMappedQuantity(context.Background(), deliveryID, productID)

		assert.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDeliveryMappingRepository_SumMappedByProduct(t *testing.T) {
	t.Run("groups totals per product", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormDeliveryMappingRepository(db)

		deliveryID := uuid.New()
		productA := uuid.New()
		productB := uuid.New()

		rows := sqlmock.NewRows([]string{"product_id", "total"}).
			AddRow(productA, 5).
			AddRow(productB, 2)

		mock.ExpectQuery(`SELECT product_id, COALESCE\(SUM\(quantity\), 0\) AS total FROM "delivery_mappings" WHERE delivery_id = \$1 GROUP BY "product_id"`).
			WithArgs(deliveryID).
			WillReturnRows(rows)

		totals, err := repo.SumMappedByProduct(context.Background(), deliveryID)

		assert.NoError(t, err)
		assert.Equal(t, 5, totals[productA])
		assert.Equal(t, 2, totals[productB])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
