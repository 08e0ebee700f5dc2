package stock

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionType classifies stock ledger entries by their trigger
type TransactionType string

const (
	TransactionTypePurchase   TransactionType = "PURCHASE"
	TransactionTypeDispatch   TransactionType = "DISPATCH"
	TransactionTypeReturn     TransactionType = "RETURN"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	TransactionTypeInitialize TransactionType = "INITIALIZE"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeDispatch, TransactionTypeReturn, TransactionTypeAdjustment, TransactionTypeInitialize:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// StockEntry is the current cylinder balance for one product. Dispatch may
// drive the filled count negative; that is recorded and surfaced as an
// alert, never rejected, because physical reconciliation happens at return
// time.
type StockEntry struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ProductName  string    `gorm:"type:varchar(200)"`
	FilledStock  int       `gorm:"not null;default:0"`
	EmptyStock   int       `gorm:"not null;default:0"`
	DamagedStock int       `gorm:"not null;default:0"`
	InFieldStock int       `gorm:"not null;default:0"`
	UpdatedBy    uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a zero-balance entry for a product
func NewStockEntry(productID uuid.UUID, productName string, createdBy uuid.UUID) (*StockEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductName:       productName,
		UpdatedBy:         createdBy,
	}, nil
}

// HasAlert reports a balance that needs attention (negative filled or
// in-field count)
func (e *StockEntry) HasAlert() bool {
	return e.FilledStock < 0 || e.InFieldStock < 0
}

// ApplyPurchase adds received cylinders to filled stock
func (e *StockEntry) ApplyPurchase(quantity int, actorID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Purchase quantity must be positive")
	}
	e.FilledStock += quantity
	e.touch(actorID)
	return nil
}

// ApplyDispatch moves cylinders from filled stock to the field
func (e *StockEntry) ApplyDispatch(quantity int, actorID uuid.UUID) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Dispatch quantity must be positive")
	}
	e.FilledStock -= quantity
	e.InFieldStock += quantity
	e.touch(actorID)
	return nil
}

// ApplyReturn moves returned cylinders from the field into empty and
// damaged stock
func (e *StockEntry) ApplyReturn(empty, damaged int, actorID uuid.UUID) error {
	if empty < 0 || damaged < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return counts cannot be negative")
	}
	if empty+damaged == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return must include at least one cylinder")
	}
	e.EmptyStock += empty
	e.DamagedStock += damaged
	e.InFieldStock -= empty + damaged
	e.touch(actorID)
	return nil
}

// ApplyInitialize seeds the opening balances for a fresh entry
func (e *StockEntry) ApplyInitialize(filled, empty, damaged int, actorID uuid.UUID) error {
	if filled < 0 || empty < 0 || damaged < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Opening balances cannot be negative")
	}
	e.FilledStock += filled
	e.EmptyStock += empty
	e.DamagedStock += damaged
	e.touch(actorID)
	return nil
}

// ApplyAdjustment applies a manual correction to the balances
func (e *StockEntry) ApplyAdjustment(filledDelta, emptyDelta, damagedDelta, inFieldDelta int, actorID uuid.UUID) error {
	if filledDelta == 0 && emptyDelta == 0 && damagedDelta == 0 && inFieldDelta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment must change at least one balance")
	}
	e.FilledStock += filledDelta
	e.EmptyStock += emptyDelta
	e.DamagedStock += damagedDelta
	e.InFieldStock += inFieldDelta
	e.touch(actorID)
	return nil
}

// Apply routes a delta through the balance mutation for its transaction
// type. Dispatch and return deltas carry signed balance changes; the
// positive in-field or returned counts drive the mutation.
func (e *StockEntry) Apply(delta StockDelta) error {
	switch delta.Type {
	case TransactionTypePurchase:
		return e.ApplyPurchase(delta.Filled, delta.ActorID)
	case TransactionTypeDispatch:
		return e.ApplyDispatch(delta.InField, delta.ActorID)
	case TransactionTypeReturn:
		return e.ApplyReturn(delta.Empty, delta.Damaged, delta.ActorID)
	case TransactionTypeAdjustment:
		return e.ApplyAdjustment(delta.Filled, delta.Empty, delta.Damaged, delta.InField, delta.ActorID)
	case TransactionTypeInitialize:
		return e.ApplyInitialize(delta.Filled, delta.Empty, delta.Damaged, delta.ActorID)
	}
	return shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown stock transaction type")
}

func (e *StockEntry) touch(actorID uuid.UUID) {
	e.UpdatedBy = actorID
	e.UpdatedAt = time.Now()
}

// StockTransaction is one append-only delta in the stock log, tied to its
// causing reference (purchase id, delivery id, or manual adjustment)
type StockTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200)"`
	Type          TransactionType `gorm:"type:varchar(20);not null;index"`
	FilledDelta   int             `gorm:"not null;default:0"`
	EmptyDelta    int             `gorm:"not null;default:0"`
	DamagedDelta  int             `gorm:"not null;default:0"`
	InFieldDelta  int             `gorm:"not null;default:0"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceType string          `gorm:"type:varchar(50)"`
	Remarks       string          `gorm:"type:text"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid"`
	CreatedAt     time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// StockDelta describes one stock mutation to be applied atomically:
// the balance update plus its log entry
type StockDelta struct {
	ProductID     uuid.UUID
	ProductName   string
	Type          TransactionType
	Filled        int
	Empty         int
	Damaged       int
	InField       int
	ReferenceID   *uuid.UUID
	ReferenceType string
	Remarks       string
	ActorID       uuid.UUID
}

// NewStockTransaction builds the log entry for a delta
func NewStockTransaction(delta StockDelta) *StockTransaction {
	return &StockTransaction{
		ID:            uuid.New(),
		ProductID:     delta.ProductID,
		ProductName:   delta.ProductName,
		Type:          delta.Type,
		FilledDelta:   delta.Filled,
		EmptyDelta:    delta.Empty,
		DamagedDelta:  delta.Damaged,
		InFieldDelta:  delta.InField,
		ReferenceID:   delta.ReferenceID,
		ReferenceType: delta.ReferenceType,
		Remarks:       delta.Remarks,
		CreatedBy:     delta.ActorID,
		CreatedAt:     time.Now(),
	}
}

// StockSummary aggregates the register across all products
type StockSummary struct {
	TotalFilled   int `json:"total_filled"`
	TotalEmpty    int `json:"total_empty"`
	TotalDamaged  int `json:"total_damaged"`
	TotalInField  int `json:"total_in_field"`
	ProductCount  int `json:"product_count"`
	AlertProducts int `json:"alert_products"`
}
