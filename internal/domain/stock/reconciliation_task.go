package stock

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle of a reconciliation gap
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "PENDING"
	TaskStatusResolved TaskStatus = "RESOLVED"
)

// ReconciliationTask records a stock update that failed while reconciling a
// purchase or delivery transition. The primary operation already succeeded;
// the task makes the gap auditable and retryable instead of log-only.
type ReconciliationTask struct {
	shared.BaseAggregateRoot
	TriggerType   TransactionType `gorm:"type:varchar(20);not null"`
	ReferenceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReferenceType string          `gorm:"type:varchar(50)"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(200)"`
	Filled        int             `gorm:"not null;default:0"`
	Empty         int             `gorm:"not null;default:0"`
	Damaged       int             `gorm:"not null;default:0"`
	InField       int             `gorm:"not null;default:0"`
	Status        TaskStatus      `gorm:"type:varchar(20);not null;index"`
	Attempts      int             `gorm:"not null;default:0"`
	LastError     string          `gorm:"type:text"`
	ResolvedAt    *time.Time
	ResolvedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ReconciliationTask) TableName() string {
	return "reconciliation_tasks"
}

// NewReconciliationTask records a failed stock delta as a pending task
func NewReconciliationTask(delta StockDelta, cause string) (*ReconciliationTask, error) {
	if delta.ReferenceID == nil || *delta.ReferenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reconciliation task requires a reference ID")
	}
	if !delta.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown stock transaction type")
	}

	return &ReconciliationTask{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TriggerType:       delta.Type,
		ReferenceID:       *delta.ReferenceID,
		ReferenceType:     delta.ReferenceType,
		ProductID:         delta.ProductID,
		ProductName:       delta.ProductName,
		Filled:            delta.Filled,
		Empty:             delta.Empty,
		Damaged:           delta.Damaged,
		InField:           delta.InField,
		Status:            TaskStatusPending,
		Attempts:          1,
		LastError:         cause,
	}, nil
}

// Delta rebuilds the stock delta this task should apply on retry
func (t *ReconciliationTask) Delta(actorID uuid.UUID) StockDelta {
	refID := t.ReferenceID
	return StockDelta{
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		Type:          t.TriggerType,
		Filled:        t.Filled,
		Empty:         t.Empty,
		Damaged:       t.Damaged,
		InField:       t.InField,
		ReferenceID:   &refID,
		ReferenceType: t.ReferenceType,
		Remarks:       "reconciliation retry",
		ActorID:       actorID,
	}
}

// MarkResolved closes the task after a successful retry
func (t *ReconciliationTask) MarkResolved(actorID uuid.UUID) error {
	if t.Status == TaskStatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Task is already resolved")
	}
	now := time.Now()
	t.Status = TaskStatusResolved
	t.ResolvedAt = &now
	t.ResolvedBy = &actorID
	t.UpdatedAt = now
	return nil
}

// RecordFailure notes another failed attempt
func (t *ReconciliationTask) RecordFailure(cause string) {
	t.Attempts++
	t.LastError = cause
	t.UpdatedAt = time.Now()
}
