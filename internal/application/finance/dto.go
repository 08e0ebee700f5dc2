package finance

import (
	"time"

	"github.com/gasflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest records a manual income or expense entry
type CreateEntryRequest struct {
	EntryDate        time.Time       `json:"entry_date" binding:"required"`
	Type             string          `json:"type" binding:"required"`
	CategoryName     string          `json:"category_name" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode      string          `json:"payment_mode"`
	Remarks          string          `json:"remarks"`
	LinkedDeliveryID *uuid.UUID      `json:"linked_delivery_id"`
	IsAutoPosted     bool            `json:"is_auto_posted"`
}

// EntryResponse is the view of one ledger entry
type EntryResponse struct {
	ID               uuid.UUID       `json:"id"`
	EntryDate        time.Time       `json:"entry_date"`
	Type             string          `json:"type"`
	CategoryID       uuid.UUID       `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMode      string          `json:"payment_mode,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
	LinkedDeliveryID *uuid.UUID      `json:"linked_delivery_id,omitempty"`
	IsAutoPosted     bool            `json:"is_auto_posted"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CategoryResponse is one category suggestion for autocomplete
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// DailySummaryResponse is one day of the income/expense report
type DailySummaryResponse struct {
	Date         string          `json:"date"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
}

// ToEntryResponse converts the aggregate to its response DTO
func ToEntryResponse(e *finance.IncomeExpenseEntry) EntryResponse {
	return EntryResponse{
		ID:               e.ID,
		EntryDate:        e.EntryDate,
		Type:             string(e.Type),
		CategoryID:       e.CategoryID,
		CategoryName:     e.CategoryName,
		Amount:           e.Amount,
		PaymentMode:      e.PaymentMode,
		Remarks:          e.Remarks,
		LinkedDeliveryID: e.LinkedDeliveryID,
		IsAutoPosted:     e.IsAutoPosted,
		CreatedAt:        e.CreatedAt,
	}
}

// ToCategoryResponse converts a category to its response DTO
func ToCategoryResponse(c *finance.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
		Type: string(c.Type),
	}
}

// ToDailySummaryResponse converts one report row to its response DTO
func ToDailySummaryResponse(s finance.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:         s.Date.Format("2006-01-02"),
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Net:          s.Net,
	}
}
