package partner

import (
	"context"

	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// VendorService manages the vendors referenced by purchase entries
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create registers a new vendor
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	v, err := partner.NewVendor(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(v)
	return &resp, nil
}

// GetByID returns a single vendor
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(v)
	return &resp, nil
}

// SetActive activates or deactivates a vendor
func (s *VendorService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	v.IsActive = active
	return s.vendorRepo.Save(ctx, v)
}
