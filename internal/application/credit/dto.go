package credit

import (
	"time"

	"github.com/gasflow/backend/internal/domain/credit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest opens a credit account for a customer
type OpenAccountRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"required"`
}

// SetLimitRequest updates a customer's credit limit
type SetLimitRequest struct {
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"required"`
}

// RecordPaymentRequest records a payment against outstanding credit
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
	Remarks   string          `json:"remarks"`
}

// AccountResponse is the view of one credit account
type AccountResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreditUsed   decimal.Decimal `json:"credit_used"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Available    decimal.Decimal `json:"available"`
	IsActive     bool            `json:"is_active"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionResponse is one credit ledger entry
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
}

// ToAccountResponse converts the aggregate to its response DTO
func ToAccountResponse(a *credit.CreditAccount) AccountResponse {
	return AccountResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		CreditLimit:  a.CreditLimit,
		CreditUsed:   a.CreditUsed,
		TotalPaid:    a.TotalPaid,
		Outstanding:  a.Outstanding(),
		Available:    a.Available(),
		IsActive:     a.IsActive,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToTransactionResponse converts a ledger entry to its response DTO
func ToTransactionResponse(tx *credit.CreditTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		CustomerID:      tx.CustomerID,
		TransactionDate: tx.TransactionDate,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		Reference:       tx.Reference,
		ReferenceID:     tx.ReferenceID,
		Remarks:         tx.Remarks,
	}
}
