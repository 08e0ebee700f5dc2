package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseEntryRepository implements PurchaseEntryRepository using GORM
type GormPurchaseEntryRepository struct {
	db *gorm.DB
}

// NewGormPurchaseEntryRepository creates a new GormPurchaseEntryRepository
func NewGormPurchaseEntryRepository(db *gorm.DB) *GormPurchaseEntryRepository {
	return &GormPurchaseEntryRepository{db: db}
}

// FindByID finds a purchase entry by ID including line items
func (r *GormPurchaseEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseEntry, error) {
	var entry purchase.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds purchase entries with filtering and pagination
func (r *GormPurchaseEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.PurchaseEntry, error) {
	var entries []purchase.PurchaseEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&purchase.PurchaseEntry{}).Preload("Items"),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByVendor finds purchase entries for a vendor
func (r *GormPurchaseEntryRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]purchase.PurchaseEntry, error) {
	var entries []purchase.PurchaseEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&purchase.PurchaseEntry{}).
			Preload("Items").
			Where("vendor_id = ?", vendorID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a purchase entry with its line items
func (r *GormPurchaseEntryRepository) Save(ctx context.Context, p *purchase.PurchaseEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		if p.ID != uuid.Nil {
			currentItemIDs := make([]uuid.UUID, len(p.Items))
			for i, item := range p.Items {
				currentItemIDs[i] = item.ID
			}

			if len(currentItemIDs) > 0 {
				if err := tx.Where("purchase_id = ? AND id NOT IN ?", p.ID, currentItemIDs).
					Delete(&purchase.PurchaseItem{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("purchase_id = ?", p.ID).
					Delete(&purchase.PurchaseItem{}).Error; err != nil {
					return err
				}
			}

			for i := range p.Items {
				p.Items[i].PurchaseID = p.ID
				if err := tx.Save(&p.Items[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Count counts purchase entries matching the filter
func (r *GormPurchaseEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&purchase.PurchaseEntry{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, PurchaseEntrySortFields, "purchase_date")
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("purchase_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR vendor_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "invoice_number":
			query = query.Where("invoice_number = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormPurchaseEntryRepository implements PurchaseEntryRepository
var _ purchase.PurchaseEntryRepository = (*GormPurchaseEntryRepository)(nil)
