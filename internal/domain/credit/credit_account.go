package credit

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies credit ledger entries
type TransactionType string

const (
	TransactionTypeDebit    TransactionType = "DEBIT"
	TransactionTypePayment  TransactionType = "PAYMENT"
	TransactionTypeReversal TransactionType = "REVERSAL"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDebit, TransactionTypePayment, TransactionTypeReversal:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// CreditTransaction is an append-only ledger row. Once posted it is never
// updated or deleted; a mapping deletion produces an explicit reversing entry.
type CreditTransaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Type            TransactionType `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference       string          `gorm:"type:varchar(100)"`
	ReferenceID     *uuid.UUID      `gorm:"type:uuid;index"`
	Remarks         string          `gorm:"type:text"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid"`
	CreatedAt       time.Time
}

// TableName returns the table name for GORM
func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

// NewCreditTransaction creates a ledger entry
func NewCreditTransaction(customerID uuid.UUID, txType TransactionType, amount decimal.Decimal, reference string, referenceID *uuid.UUID, remarks string, createdBy uuid.UUID) (*CreditTransaction, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown transaction type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	now := time.Now()
	return &CreditTransaction{
		ID:              uuid.New(),
		CustomerID:      customerID,
		TransactionDate: now,
		Type:            txType,
		Amount:          amount,
		Reference:       reference,
		ReferenceID:     referenceID,
		Remarks:         remarks,
		CreatedBy:       createdBy,
		CreatedAt:       now,
	}, nil
}

// CreditAccount is the per-customer running balance: limit, used, and paid,
// with outstanding and available derived. CreditUsed only ever decreases via
// the exact reversal of the debit that increased it.
type CreditAccount struct {
	shared.BaseAggregateRoot
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerName string          `gorm:"type:varchar(200)"`
	CreditLimit  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreditUsed   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
	UpdatedBy    uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CreditAccount) TableName() string {
	return "credit_accounts"
}

// NewCreditAccount creates an account with a zero balance
func NewCreditAccount(customerID uuid.UUID, customerName string, creditLimit decimal.Decimal, createdBy uuid.UUID) (*CreditAccount, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
	}

	return &CreditAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		CreditLimit:       creditLimit,
		CreditUsed:        decimal.Zero,
		TotalPaid:         decimal.Zero,
		IsActive:          true,
		UpdatedBy:         createdBy,
	}, nil
}

// Outstanding returns used minus paid
func (a *CreditAccount) Outstanding() decimal.Decimal {
	return a.CreditUsed.Sub(a.TotalPaid)
}

// Available returns limit minus outstanding
func (a *CreditAccount) Available() decimal.Decimal {
	return a.CreditLimit.Sub(a.Outstanding())
}

// SetLimit updates the credit limit
func (a *CreditAccount) SetLimit(limit decimal.Decimal, actorID uuid.UUID) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
	}
	a.CreditLimit = limit
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
	return nil
}

// Debit increases CreditUsed for a credit sale. The posting is rejected when
// it would push outstanding over the limit.
func (a *CreditAccount) Debit(amount decimal.Decimal, actorID uuid.UUID) error {
	if !a.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Credit account is inactive")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if a.Outstanding().Add(amount).GreaterThan(a.CreditLimit) {
		return shared.ErrCreditLimitExceeded
	}

	a.CreditUsed = a.CreditUsed.Add(amount)
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
	return nil
}

// ReverseDebit decreases CreditUsed by the exact amount of a prior debit
func (a *CreditAccount) ReverseDebit(amount decimal.Decimal, actorID uuid.UUID) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}
	if amount.GreaterThan(a.CreditUsed) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal exceeds credit used")
	}

	a.CreditUsed = a.CreditUsed.Sub(amount)
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
	return nil
}

// RecordPayment increases TotalPaid. Outstanding cannot go negative.
func (a *CreditAccount) RecordPayment(amount decimal.Decimal, actorID uuid.UUID) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(a.Outstanding()) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_OUTSTANDING", "Payment exceeds outstanding balance")
	}

	a.TotalPaid = a.TotalPaid.Add(amount)
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the account inactive; no new debits are accepted
func (a *CreditAccount) Deactivate(actorID uuid.UUID) {
	a.IsActive = false
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
}

// Activate re-enables the account
func (a *CreditAccount) Activate(actorID uuid.UUID) {
	a.IsActive = true
	a.UpdatedBy = actorID
	a.UpdatedAt = time.Now()
}
