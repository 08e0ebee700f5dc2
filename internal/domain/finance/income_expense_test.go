package finance

import (
	"testing"
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewIncomeExpenseEntry(t *testing.T) {
	entryDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	t.Run("create income entry", func(t *testing.T) {
		entry, err := NewIncomeExpenseEntry(entryDate, EntryTypeIncome, "Cylinder Sales", decimal.NewFromInt(12500), "CASH", "", nil, false, actorID)

		assert.NoError(t, err)
		assert.Equal(t, EntryTypeIncome, entry.Type)
		assert.Equal(t, "Cylinder Sales", entry.CategoryName)
		assert.False(t, entry.IsAutoPosted)
		assert.Equal(t, 1, entry.Version)
	})

	t.Run("trim category name", func(t *testing.T) {
		entry, err := NewIncomeExpenseEntry(entryDate, EntryTypeExpense, "  Vehicle Fuel  ", decimal.NewFromInt(3000), "CASH", "", nil, false, actorID)

		assert.NoError(t, err)
		assert.Equal(t, "Vehicle Fuel", entry.CategoryName)
	})

	t.Run("reject zero date", func(t *testing.T) {
		_, err := NewIncomeExpenseEntry(time.Time{}, EntryTypeIncome, "Cylinder Sales", decimal.NewFromInt(100), "CASH", "", nil, false, actorID)

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})

	t.Run("reject unknown entry type", func(t *testing.T) {
		_, err := NewIncomeExpenseEntry(entryDate, EntryType("TRANSFER"), "Cylinder Sales", decimal.NewFromInt(100), "CASH", "", nil, false, actorID)

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_ENTRY_TYPE", domainErr.Code)
	})

	t.Run("reject blank category", func(t *testing.T) {
		_, err := NewIncomeExpenseEntry(entryDate, EntryTypeExpense, "   ", decimal.NewFromInt(100), "CASH", "", nil, false, actorID)

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("reject non-positive amount", func(t *testing.T) {
		_, err := NewIncomeExpenseEntry(entryDate, EntryTypeExpense, "Vehicle Fuel", decimal.Zero, "CASH", "", nil, false, actorID)

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})
}

func TestNewCategory(t *testing.T) {
	t.Run("create category", func(t *testing.T) {
		category, err := NewCategory("Office Rent", EntryTypeExpense)

		assert.NoError(t, err)
		assert.Equal(t, "Office Rent", category.Name)
		assert.Equal(t, EntryTypeExpense, category.Type)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("reject blank name", func(t *testing.T) {
		_, err := NewCategory("  ", EntryTypeIncome)

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("reject unknown type", func(t *testing.T) {
		_, err := NewCategory("Office Rent", EntryType("OTHER"))

		domainErr, ok := err.(*shared.DomainError)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_ENTRY_TYPE", domainErr.Code)
	})
}
