package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDailyDeliveryRepository implements DailyDeliveryRepository using GORM
type GormDailyDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDailyDeliveryRepository creates a new GormDailyDeliveryRepository
func NewGormDailyDeliveryRepository(db *gorm.DB) *GormDailyDeliveryRepository {
	return &GormDailyDeliveryRepository{db: db}
}

// FindByID finds a daily delivery by ID including drivers, items, and actuals
func (r *GormDailyDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.DailyDelivery, error) {
	var d delivery.DailyDelivery
	if err := r.db.WithContext(ctx).
		Preload("Drivers").
		Preload("Items").
		Preload("Actuals").
		First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds daily deliveries with filtering and pagination
func (r *GormDailyDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	var deliveries []delivery.DailyDelivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.DailyDelivery{}).Preload("Drivers").Preload("Items"),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByDateRange finds daily deliveries within a date range
func (r *GormDailyDeliveryRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	var deliveries []delivery.DailyDelivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.DailyDelivery{}).
			Preload("Drivers").Preload("Items").
			Where("delivery_date >= ? AND delivery_date <= ?", from, to),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByVehicle finds daily deliveries for a vehicle
func (r *GormDailyDeliveryRepository) FindByVehicle(ctx context.Context, vehicleID uuid.UUID, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	var deliveries []delivery.DailyDelivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.DailyDelivery{}).
			Preload("Drivers").Preload("Items").
			Where("vehicle_id = ?", vehicleID),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save creates or updates a daily delivery with its drivers, items, and actuals
func (r *GormDailyDeliveryRepository) Save(ctx context.Context, d *delivery.DailyDelivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(d).Error; err != nil {
			return err
		}
		return r.saveChildren(tx, d)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDailyDeliveryRepository) SaveWithLock(ctx context.Context, d *delivery.DailyDelivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version from database
		var currentVersion int
		if err := tx.Model(&delivery.DailyDelivery{}).
			Where("id = ?", d.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		// Check version matches
		if currentVersion != d.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The delivery has been modified by another user")
		}

		// Increment version
		d.Version++
		d.UpdatedAt = time.Now()

		result := tx.Model(&delivery.DailyDelivery{}).
			Where("id = ? AND version = ?", d.ID, currentVersion).
			Updates(map[string]interface{}{
				"delivery_date":           d.DeliveryDate,
				"vehicle_id":              d.VehicleID,
				"vehicle_number":          d.VehicleNumber,
				"status":                  d.Status,
				"start_time":              d.StartTime,
				"return_time":             d.ReturnTime,
				"remarks":                 d.Remarks,
				"close_remarks":           d.CloseRemarks,
				"metric_total_planned":    d.Metrics.TotalPlanned,
				"metric_total_delivered":  d.Metrics.TotalDelivered,
				"metric_total_pending":    d.Metrics.TotalPending,
				"metric_completed_items":  d.Metrics.CompletedItems,
				"metric_pending_items":    d.Metrics.PendingItems,
				"metric_total_invoices":   d.Metrics.TotalInvoices,
				"metric_total_deliveries": d.Metrics.TotalDeliveries,
				"metric_cash_collected":   d.Metrics.CashCollected,
				"metric_empty_returned":   d.Metrics.EmptyReturned,
				"metric_damaged_returned": d.Metrics.DamagedReturned,
				"updated_by":              d.UpdatedBy,
				"closed_at":               d.ClosedAt,
				"version":                 d.Version,
				"updated_at":              d.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The delivery has been modified by another user")
		}

		return r.saveChildren(tx, d)
	})
}

// saveChildren reconciles the three child collections against the aggregate
func (r *GormDailyDeliveryRepository) saveChildren(tx *gorm.DB, d *delivery.DailyDelivery) error {
	// Drivers
	driverIDs := make([]uuid.UUID, len(d.Drivers))
	for i, driver := range d.Drivers {
		driverIDs[i] = driver.ID
	}
	if len(driverIDs) > 0 {
		if err := tx.Where("delivery_id = ? AND id NOT IN ?", d.ID, driverIDs).
			Delete(&delivery.DeliveryDriver{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("delivery_id = ?", d.ID).
			Delete(&delivery.DeliveryDriver{}).Error; err != nil {
			return err
		}
	}
	for i := range d.Drivers {
		d.Drivers[i].DeliveryID = d.ID
		if err := tx.Save(&d.Drivers[i]).Error; err != nil {
			return err
		}
	}

	// Items
	itemIDs := make([]uuid.UUID, len(d.Items))
	for i, item := range d.Items {
		itemIDs[i] = item.ID
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("delivery_id = ? AND id NOT IN ?", d.ID, itemIDs).
			Delete(&delivery.DeliveryItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("delivery_id = ?", d.ID).
			Delete(&delivery.DeliveryItem{}).Error; err != nil {
			return err
		}
	}
	for i := range d.Items {
		d.Items[i].DeliveryID = d.ID
		if err := tx.Save(&d.Items[i]).Error; err != nil {
			return err
		}
	}

	// Actuals only grow or update; they are never removed once initialized
	for i := range d.Actuals {
		d.Actuals[i].DeliveryID = d.ID
		if err := tx.Save(&d.Actuals[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Count counts daily deliveries matching the filter
func (r *GormDailyDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&delivery.DailyDelivery{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDailyDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, DailyDeliverySortFields, "delivery_date")
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("delivery_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDailyDeliveryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vehicle_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("delivery_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("delivery_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormDailyDeliveryRepository implements DailyDeliveryRepository
var _ delivery.DailyDeliveryRepository = (*GormDailyDeliveryRepository)(nil)
