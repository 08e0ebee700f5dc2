package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gasflow/backend/internal/domain/finance"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormIncomeExpenseRepository implements IncomeExpenseRepository using GORM
type GormIncomeExpenseRepository struct {
	db *gorm.DB
}

// NewGormIncomeExpenseRepository creates a new GormIncomeExpenseRepository
func NewGormIncomeExpenseRepository(db *gorm.DB) *GormIncomeExpenseRepository {
	return &GormIncomeExpenseRepository{db: db}
}

// FindByID finds an entry by ID
func (r *GormIncomeExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeExpenseEntry, error) {
	var entry finance.IncomeExpenseEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds entries with filtering and pagination
func (r *GormIncomeExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.IncomeExpenseEntry, error) {
	var entries []finance.IncomeExpenseEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.IncomeExpenseEntry{}),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveWithCategory resolves or creates the entry's category by (name, type)
// and inserts the entry in one transaction
func (r *GormIncomeExpenseRepository) SaveWithCategory(ctx context.Context, entry *finance.IncomeExpenseEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category finance.Category
		err := tx.First(&category, "name = ? AND type = ?", entry.CategoryName, entry.Type).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, cerr := finance.NewCategory(entry.CategoryName, entry.Type)
			if cerr != nil {
				return cerr
			}
			if cerr := tx.Create(created).Error; cerr != nil {
				return cerr
			}
			category = *created
		} else if err != nil {
			return err
		}

		entry.CategoryID = category.ID
		entry.CategoryName = category.Name
		return tx.Create(entry).Error
	})
}

// Delete removes an entry. Auto-posted entries stay in the ledger; delete
// the manual entry they mirror instead.
func (r *GormIncomeExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry finance.IncomeExpenseEntry
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if entry.IsAutoPosted {
			return shared.NewDomainError("AUTO_POSTED", "Auto-posted entries cannot be deleted")
		}
		return tx.Delete(&finance.IncomeExpenseEntry{}, "id = ?", id).Error
	})
}

// SearchCategories returns categories matching the type and name prefix
func (r *GormIncomeExpenseRepository) SearchCategories(ctx context.Context, entryType *finance.EntryType, search string) ([]finance.Category, error) {
	query := r.db.WithContext(ctx).Model(&finance.Category{})
	if entryType != nil {
		query = query.Where("type = ?", *entryType)
	}
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("name ILIKE ?", search+"%")
	}

	var categories []finance.Category
	if err := query.Order("name ASC").Limit(20).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SummarizeByDay aggregates income and expense totals per day over the range
func (r *GormIncomeExpenseRepository) SummarizeByDay(ctx context.Context, from, to time.Time) ([]finance.DailySummary, error) {
	var rows []struct {
		Day          time.Time
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.IncomeExpenseEntry{}).
		Select(`DATE(entry_date) AS day,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense`,
			finance.EntryTypeIncome, finance.EntryTypeExpense).
		Where("entry_date >= ? AND entry_date < ?", from, to.AddDate(0, 0, 1)).
		Group("DATE(entry_date)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]finance.DailySummary, len(rows))
	for i, row := range rows {
		summaries[i] = finance.DailySummary{
			Date:         row.Day,
			TotalIncome:  row.TotalIncome,
			TotalExpense: row.TotalExpense,
			Net:          row.TotalIncome.Sub(row.TotalExpense),
		}
	}
	return summaries, nil
}

// Count counts entries matching the filter
func (r *GormIncomeExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&finance.IncomeExpenseEntry{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormIncomeExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, IncomeExpenseSortFields, "entry_date")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("entry_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies date and type bounds from the filter
func (r *GormIncomeExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Filters != nil {
		if from, ok := filter.Filters["from"].(time.Time); ok {
			query = query.Where("entry_date >= ?", from)
		}
		if to, ok := filter.Filters["to"].(time.Time); ok {
			query = query.Where("entry_date < ?", to.AddDate(0, 0, 1))
		}
		if entryType, ok := filter.Filters["type"].(finance.EntryType); ok {
			query = query.Where("type = ?", entryType)
		}
	}
	if filter.Search != "" {
		query = query.Where("category_name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormIncomeExpenseRepository implements IncomeExpenseRepository
var _ finance.IncomeExpenseRepository = (*GormIncomeExpenseRepository)(nil)
