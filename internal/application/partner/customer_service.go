package partner

import (
	"context"

	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService manages the customer reference data consumed by
// mapping and credit flows
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	c, err := partner.NewCustomer(req.Name, req.Phone, req.Address, req.CreditLimit)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// GetByID returns a single customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// List returns customers with pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Search != "" {
		f.Filters["search"] = filter.Search
	}

	customers, err := s.customerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}

// SetActive activates or deactivates a customer. Deactivation does not
// touch an existing credit account; the credit flow freezes separately.
func (s *CustomerService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = active
	return s.customerRepo.Save(ctx, c)
}
