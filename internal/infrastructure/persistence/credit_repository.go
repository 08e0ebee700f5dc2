package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gasflow/backend/internal/domain/credit"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCreditAccountRepository implements CreditAccountRepository using GORM
type GormCreditAccountRepository struct {
	db *gorm.DB
}

// NewGormCreditAccountRepository creates a new GormCreditAccountRepository
func NewGormCreditAccountRepository(db *gorm.DB) *GormCreditAccountRepository {
	return &GormCreditAccountRepository{db: db}
}

// FindByCustomer finds an account by customer ID
func (r *GormCreditAccountRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*credit.CreditAccount, error) {
	var account credit.CreditAccount
	if err := r.db.WithContext(ctx).
		First(&account, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll finds accounts with filtering and pagination
func (r *GormCreditAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]credit.CreditAccount, error) {
	var accounts []credit.CreditAccount
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&credit.CreditAccount{}),
		filter,
	)

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormCreditAccountRepository) Save(ctx context.Context, account *credit.CreditAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// PostPayment locks the account row, applies the payment, and appends the
// ledger entry in one transaction
func (r *GormCreditAccountRepository) PostPayment(ctx context.Context, customerID uuid.UUID, tx *credit.CreditTransaction) (*credit.CreditAccount, error) {
	var account credit.CreditAccount
	err := r.db.WithContext(ctx).Transaction(func(dbTx *gorm.DB) error {
		if err := dbTx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, "customer_id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := account.RecordPayment(tx.Amount, tx.CreatedBy); err != nil {
			return err
		}
		if err := dbTx.Save(&account).Error; err != nil {
			return err
		}

		return dbTx.Create(tx).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Count counts accounts matching the filter
func (r *GormCreditAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&credit.CreditAccount{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCreditAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, CreditAccountSortFields, "customer_name")
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("customer_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCreditAccountRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "with_outstanding":
			if b, ok := value.(bool); ok && b {
				query = query.Where("credit_used > total_paid")
			}
		}
	}

	return query
}

// GormCreditTransactionRepository implements CreditTransactionRepository
// using GORM. The ledger is append-only; there is no update or delete path.
type GormCreditTransactionRepository struct {
	db *gorm.DB
}

// NewGormCreditTransactionRepository creates a new GormCreditTransactionRepository
func NewGormCreditTransactionRepository(db *gorm.DB) *GormCreditTransactionRepository {
	return &GormCreditTransactionRepository{db: db}
}

// FindByCustomer returns ledger entries for a customer, newest first
func (r *GormCreditTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]credit.CreditTransaction, error) {
	var entries []credit.CreditTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&credit.CreditTransaction{}).
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindPayments returns payment entries, optionally scoped to a customer
func (r *GormCreditTransactionRepository) FindPayments(ctx context.Context, customerID *uuid.UUID, filter shared.Filter) ([]credit.CreditTransaction, error) {
	var entries []credit.CreditTransaction
	query := r.db.WithContext(ctx).Model(&credit.CreditTransaction{}).
		Where("type = ?", credit.TransactionTypePayment)
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	query = r.applyFilter(query, filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Append inserts a ledger entry
func (r *GormCreditTransactionRepository) Append(ctx context.Context, tx *credit.CreditTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// applyFilter applies filter options to the query
func (r *GormCreditTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "start_date":
			query = query.Where("transaction_date >= ?", value)
		case "end_date":
			query = query.Where("transaction_date <= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, CreditTransactionSortFields, "transaction_date")
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("transaction_date DESC")
	}

	return query
}

// Ensure the repositories implement their interfaces
var (
	_ credit.CreditAccountRepository     = (*GormCreditAccountRepository)(nil)
	_ credit.CreditTransactionRepository = (*GormCreditTransactionRepository)(nil)
)
