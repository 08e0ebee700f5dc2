package credit

import (
	"context"

	"github.com/gasflow/backend/internal/domain/credit"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreditService handles credit accounts and the payment ledger
type CreditService struct {
	accountRepo     credit.CreditAccountRepository
	transactionRepo credit.CreditTransactionRepository
	customerRepo    partner.CustomerRepository
}

// NewCreditService creates a new CreditService
func NewCreditService(
	accountRepo credit.CreditAccountRepository,
	transactionRepo credit.CreditTransactionRepository,
	customerRepo partner.CustomerRepository,
) *CreditService {
	return &CreditService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
	}
}

// OpenAccount opens a credit account for a customer. A customer has at most
// one account; a second open attempt returns ErrAlreadyExists.
func (s *CreditService) OpenAccount(ctx context.Context, req OpenAccountRequest, actorID uuid.UUID) (*AccountResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is not active")
	}

	if _, err := s.accountRepo.FindByCustomer(ctx, req.CustomerID); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	account, err := credit.NewCreditAccount(customer.ID, customer.Name, req.CreditLimit, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// GetAccount retrieves a customer's credit account
func (s *CreditService) GetAccount(ctx context.Context, customerID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// ListAccounts retrieves credit accounts with pagination
func (s *CreditService) ListAccounts(ctx context.Context, filter shared.Filter) ([]AccountResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "customer_name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return responses, total, nil
}

// SetLimit updates a customer's credit limit. Lowering the limit below the
// current outstanding is allowed; it only blocks further debits.
func (s *CreditService) SetLimit(ctx context.Context, customerID uuid.UUID, req SetLimitRequest, actorID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := account.SetLimit(req.CreditLimit, actorID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// RecordPayment posts a payment against a customer's outstanding credit.
// The balance update and the ledger entry are committed in one transaction.
func (s *CreditService) RecordPayment(ctx context.Context, customerID uuid.UUID, req RecordPaymentRequest, actorID uuid.UUID) (*AccountResponse, error) {
	tx, err := credit.NewCreditTransaction(customerID, credit.TransactionTypePayment, req.Amount, req.Reference, nil, req.Remarks, actorID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.PostPayment(ctx, customerID, tx)
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// ListTransactions retrieves a customer's credit ledger, newest first
func (s *CreditService) ListTransactions(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]TransactionResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	transactions, err := s.transactionRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = ToTransactionResponse(&tx)
	}
	return responses, nil
}

// ListPayments retrieves payment entries, optionally scoped to a customer
func (s *CreditService) ListPayments(ctx context.Context, customerID *uuid.UUID, filter shared.Filter) ([]TransactionResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	payments, err := s.transactionRepo.FindPayments(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(payments))
	for i, tx := range payments {
		responses[i] = ToTransactionResponse(&tx)
	}
	return responses, nil
}

// Deactivate freezes a credit account. Frozen accounts reject new debits
// but still accept payments through the ledger.
func (s *CreditService) Deactivate(ctx context.Context, customerID uuid.UUID, actorID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	account.Deactivate(actorID)

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}
