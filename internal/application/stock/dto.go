package stock

import (
	"time"

	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// AdjustStockRequest applies a manual correction to one product's balances
type AdjustStockRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	FilledDelta  int       `json:"filled_delta"`
	EmptyDelta   int       `json:"empty_delta"`
	DamagedDelta int       `json:"damaged_delta"`
	InFieldDelta int       `json:"in_field_delta"`
	Remarks      string    `json:"remarks"`
}

// InitializeStockRequest seeds a product's opening balances
type InitializeStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Filled    int       `json:"filled" binding:"min=0"`
	Empty     int       `json:"empty" binding:"min=0"`
	Damaged   int       `json:"damaged" binding:"min=0"`
	Remarks   string    `json:"remarks"`
}

// UpdateFromReturnRequest books returned cylinders against a closed delivery
type UpdateFromReturnRequest struct {
	EmptyReturned   int    `json:"empty_returned" binding:"min=0"`
	DamagedReturned int    `json:"damaged_returned" binding:"min=0"`
	Remarks         string `json:"remarks"`
}

// StockEntryResponse is one product's balance row
type StockEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	FilledStock  int       `json:"filled_stock"`
	EmptyStock   int       `json:"empty_stock"`
	DamagedStock int       `json:"damaged_stock"`
	InFieldStock int       `json:"in_field_stock"`
	HasAlert     bool      `json:"has_alert"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockTransactionResponse is one entry of the append-only stock log
type StockTransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	ProductName   string     `json:"product_name"`
	Type          string     `json:"type"`
	FilledDelta   int        `json:"filled_delta"`
	EmptyDelta    int        `json:"empty_delta"`
	DamagedDelta  int        `json:"damaged_delta"`
	InFieldDelta  int        `json:"in_field_delta"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty"`
	Remarks       string     `json:"remarks,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ReconciliationTaskResponse is one unresolved stock gap
type ReconciliationTaskResponse struct {
	ID            uuid.UUID  `json:"id"`
	TriggerType   string     `json:"trigger_type"`
	ReferenceID   uuid.UUID  `json:"reference_id"`
	ReferenceType string     `json:"reference_type"`
	ProductID     uuid.UUID  `json:"product_id"`
	ProductName   string     `json:"product_name"`
	Filled        int        `json:"filled"`
	Empty         int        `json:"empty"`
	Damaged       int        `json:"damaged"`
	InField       int        `json:"in_field"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToStockEntryResponse converts a balance row to its response DTO
func ToStockEntryResponse(e *stock.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		ProductName:  e.ProductName,
		FilledStock:  e.FilledStock,
		EmptyStock:   e.EmptyStock,
		DamagedStock: e.DamagedStock,
		InFieldStock: e.InFieldStock,
		HasAlert:     e.HasAlert(),
		UpdatedAt:    e.UpdatedAt,
	}
}

// ToStockTransactionResponse converts a log entry to its response DTO
func ToStockTransactionResponse(tx *stock.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:            tx.ID,
		ProductID:     tx.ProductID,
		ProductName:   tx.ProductName,
		Type:          string(tx.Type),
		FilledDelta:   tx.FilledDelta,
		EmptyDelta:    tx.EmptyDelta,
		DamagedDelta:  tx.DamagedDelta,
		InFieldDelta:  tx.InFieldDelta,
		ReferenceID:   tx.ReferenceID,
		ReferenceType: tx.ReferenceType,
		Remarks:       tx.Remarks,
		CreatedAt:     tx.CreatedAt,
	}
}

// ToReconciliationTaskResponse converts a task to its response DTO
func ToReconciliationTaskResponse(t *stock.ReconciliationTask) ReconciliationTaskResponse {
	return ReconciliationTaskResponse{
		ID:            t.ID,
		TriggerType:   string(t.TriggerType),
		ReferenceID:   t.ReferenceID,
		ReferenceType: t.ReferenceType,
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		Filled:        t.Filled,
		Empty:         t.Empty,
		Damaged:       t.Damaged,
		InField:       t.InField,
		Status:        string(t.Status),
		Attempts:      t.Attempts,
		LastError:     t.LastError,
		ResolvedAt:    t.ResolvedAt,
		CreatedAt:     t.CreatedAt,
	}
}
