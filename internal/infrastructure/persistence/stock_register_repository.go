package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRegisterRepository implements StockRegisterRepository using GORM
type GormStockRegisterRepository struct {
	db *gorm.DB
}

// NewGormStockRegisterRepository creates a new GormStockRegisterRepository
func NewGormStockRegisterRepository(db *gorm.DB) *GormStockRegisterRepository {
	return &GormStockRegisterRepository{db: db}
}

// FindByProduct finds the balance row for a product
func (r *GormStockRegisterRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*stock.StockEntry, error) {
	var entry stock.StockEntry
	if err := r.db.WithContext(ctx).
		First(&entry, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds balance rows with filtering and pagination
func (r *GormStockRegisterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.StockEntry, error) {
	var entries []stock.StockEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockEntry{}),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a balance row
func (r *GormStockRegisterRepository) Save(ctx context.Context, entry *stock.StockEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ApplyDelta applies one stock mutation atomically: the balance row is
// locked (or created) and updated, and the log entry is appended, in one
// transaction. Balances are allowed to go negative.
func (r *GormStockRegisterRepository) ApplyDelta(ctx context.Context, delta stock.StockDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry stock.StockEntry
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&entry, "product_id = ?", delta.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, nerr := stock.NewStockEntry(delta.ProductID, delta.ProductName, delta.ActorID)
			if nerr != nil {
				return nerr
			}
			entry = *created
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := entry.Apply(delta); err != nil {
			return err
		}
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		return tx.Create(stock.NewStockTransaction(delta)).Error
	})
}

// HasTransaction reports whether a log entry already exists for the
// (type, reference, product) triple
func (r *GormStockRegisterRepository) HasTransaction(ctx context.Context, txType stock.TransactionType, referenceID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.StockTransaction{}).
		Where("type = ? AND reference_id = ? AND product_id = ?", txType, referenceID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindTransactions returns log entries with filtering and pagination
func (r *GormStockRegisterRepository) FindTransactions(ctx context.Context, filter shared.Filter) ([]stock.StockTransaction, error) {
	var entries []stock.StockTransaction
	query := r.db.WithContext(ctx).Model(&stock.StockTransaction{})

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "reference_id":
			query = query.Where("reference_id = ?", value)
		case "start_date":
			query = query.Where("created_at >= ?", value)
		case "end_date":
			query = query.Where("created_at <= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockTransactionSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Summary aggregates the register across all products
func (r *GormStockRegisterRepository) Summary(ctx context.Context) (*stock.StockSummary, error) {
	var row struct {
		TotalFilled   int
		TotalEmpty    int
		TotalDamaged  int
		TotalInField  int
		ProductCount  int
		AlertProducts int
	}
	if err := r.db.WithContext(ctx).
		Model(&stock.StockEntry{}).
		Select(`COALESCE(SUM(filled_stock), 0) AS total_filled,
			COALESCE(SUM(empty_stock), 0) AS total_empty,
			COALESCE(SUM(damaged_stock), 0) AS total_damaged,
			COALESCE(SUM(in_field_stock), 0) AS total_in_field,
			COUNT(*) AS product_count,
			COUNT(*) FILTER (WHERE filled_stock < 0 OR in_field_stock < 0) AS alert_products`).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	return &stock.StockSummary{
		TotalFilled:   row.TotalFilled,
		TotalEmpty:    row.TotalEmpty,
		TotalDamaged:  row.TotalDamaged,
		TotalInField:  row.TotalInField,
		ProductCount:  row.ProductCount,
		AlertProducts: row.AlertProducts,
	}, nil
}

// Count counts balance rows matching the filter
func (r *GormStockRegisterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&stock.StockEntry{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockRegisterRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, StockEntrySortFields, "product_name")
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("product_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRegisterRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("product_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "alerts_only":
			if b, ok := value.(bool); ok && b {
				query = query.Where("filled_stock < 0 OR in_field_stock < 0")
			}
		}
	}

	return query
}

// Ensure GormStockRegisterRepository implements StockRegisterRepository
var _ stock.StockRegisterRepository = (*GormStockRegisterRepository)(nil)
