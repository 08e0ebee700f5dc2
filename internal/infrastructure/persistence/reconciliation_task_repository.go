package persistence

import (
	"context"
	"errors"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReconciliationTaskRepository implements ReconciliationTaskRepository
// using GORM
type GormReconciliationTaskRepository struct {
	db *gorm.DB
}

// NewGormReconciliationTaskRepository creates a new GormReconciliationTaskRepository
func NewGormReconciliationTaskRepository(db *gorm.DB) *GormReconciliationTaskRepository {
	return &GormReconciliationTaskRepository{db: db}
}

// FindByID finds a task by ID
func (r *GormReconciliationTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.ReconciliationTask, error) {
	var task stock.ReconciliationTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindPending returns unresolved tasks, oldest first
func (r *GormReconciliationTaskRepository) FindPending(ctx context.Context, filter shared.Filter) ([]stock.ReconciliationTask, error) {
	var tasks []stock.ReconciliationTask
	query := r.db.WithContext(ctx).Model(&stock.ReconciliationTask{}).
		Where("status = ?", stock.TaskStatusPending)

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "trigger_type":
			query = query.Where("trigger_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save creates or updates a task
func (r *GormReconciliationTaskRepository) Save(ctx context.Context, task *stock.ReconciliationTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// CountPending counts unresolved tasks
func (r *GormReconciliationTaskRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.ReconciliationTask{}).
		Where("status = ?", stock.TaskStatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReconciliationTaskRepository implements ReconciliationTaskRepository
var _ stock.ReconciliationTaskRepository = (*GormReconciliationTaskRepository)(nil)
