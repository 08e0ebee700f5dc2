package finance

import (
	"strings"
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry as money in or money out
type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// String returns the string representation
func (t EntryType) String() string {
	return string(t)
}

// Category groups entries for reporting. Categories are created on first
// use; the (name, type) pair is unique.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_name_type"`
	Type      EntryType `gorm:"type:varchar(10);not null;uniqueIndex:idx_category_name_type"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "income_expense_categories"
}

// NewCategory creates a category for the given type
func NewCategory(name string, entryType EntryType) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
	}
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      entryType,
		CreatedAt: time.Now(),
	}, nil
}

// IncomeExpenseEntry is one posting in the money ledger. Entries linked to
// a delivery carry its id so cash collections can be traced; auto-posted
// entries come from delivery close rather than manual input.
type IncomeExpenseEntry struct {
	shared.BaseAggregateRoot
	EntryDate        time.Time       `gorm:"not null;index"`
	Type             EntryType       `gorm:"type:varchar(10);not null;index"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryName     string          `gorm:"type:varchar(100)"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMode      string          `gorm:"type:varchar(20)"`
	Remarks          string          `gorm:"type:text"`
	LinkedDeliveryID *uuid.UUID      `gorm:"type:uuid;index"`
	IsAutoPosted     bool            `gorm:"not null;default:false"`
	CreatedBy        uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (IncomeExpenseEntry) TableName() string {
	return "income_expense_entries"
}

// NewIncomeExpenseEntry creates a ledger entry
func NewIncomeExpenseEntry(
	entryDate time.Time,
	entryType EntryType,
	categoryName string,
	amount decimal.Decimal,
	paymentMode string,
	remarks string,
	linkedDeliveryID *uuid.UUID,
	isAutoPosted bool,
	createdBy uuid.UUID,
) (*IncomeExpenseEntry, error) {
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date is required")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be INCOME or EXPENSE")
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &IncomeExpenseEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntryDate:         entryDate,
		Type:              entryType,
		CategoryName:      strings.TrimSpace(categoryName),
		Amount:            amount,
		PaymentMode:       paymentMode,
		Remarks:           remarks,
		LinkedDeliveryID:  linkedDeliveryID,
		IsAutoPosted:      isAutoPosted,
		CreatedBy:         createdBy,
	}, nil
}

// DailySummary is one day's totals for the income/expense report
type DailySummary struct {
	Date         time.Time       `json:"date"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}
