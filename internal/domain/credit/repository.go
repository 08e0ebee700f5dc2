package credit

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreditAccountRepository defines the interface for credit account persistence.
// Posting methods serialize per customer by locking the account row inside
// the transaction that appends the ledger entry.
type CreditAccountRepository interface {
	// FindByCustomer finds an account by customer ID
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*CreditAccount, error)

	// FindAll finds accounts with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]CreditAccount, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *CreditAccount) error

	// PostPayment locks the account row, applies the payment, and appends
	// the ledger entry in one transaction
	PostPayment(ctx context.Context, customerID uuid.UUID, tx *CreditTransaction) (*CreditAccount, error)

	// Count counts accounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CreditTransactionRepository defines the interface for the credit ledger
type CreditTransactionRepository interface {
	// FindByCustomer returns ledger entries for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CreditTransaction, error)

	// FindPayments returns payment entries, optionally scoped to a customer
	FindPayments(ctx context.Context, customerID *uuid.UUID, filter shared.Filter) ([]CreditTransaction, error)

	// Append inserts a ledger entry
	Append(ctx context.Context, tx *CreditTransaction) error
}
