package purchase

import (
	"context"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseService handles vendor purchase entries
type PurchaseService struct {
	purchaseRepo   purchase.PurchaseEntryRepository
	vendorRepo     partner.VendorRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo purchase.PurchaseEntryRepository,
	vendorRepo partner.VendorRepository,
	productRepo catalog.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		vendorRepo:   vendorRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a purchase entry. Saving the entry succeeds or fails on its
// own; the filled-stock updates it triggers run through the event handlers
// and never roll the entry back.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest, actorID uuid.UUID) (*PurchaseResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive {
		return nil, shared.NewDomainError("VENDOR_INACTIVE", "Vendor is not active")
	}

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	p, err := purchase.NewPurchaseEntry(vendor.ID, vendor.Name, req.InvoiceNumber, req.PurchaseDate, items, req.Remarks, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, p)

	response := ToPurchaseResponse(p)
	return &response, nil
}

// GetByID retrieves a purchase entry by ID
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(p)
	return &response, nil
}

// List retrieves purchase entries with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "purchase_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}

	var (
		entries []purchase.PurchaseEntry
		err     error
	)
	if filter.VendorID != nil {
		entries, err = s.purchaseRepo.FindByVendor(ctx, *filter.VendorID, domainFilter)
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	} else {
		entries, err = s.purchaseRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseResponse, len(entries))
	for i, p := range entries {
		responses[i] = ToPurchaseResponse(&p)
	}
	return responses, total, nil
}

// UpdateItems replaces the line items of an active purchase entry. Stock
// corrections for already-reconciled quantities go through manual
// adjustments, not through this path.
func (s *PurchaseService) UpdateItems(ctx context.Context, id uuid.UUID, req UpdatePurchaseItemsRequest, actorID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateItems(items, actorID); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// Deactivate voids a purchase entry without deleting it
func (s *PurchaseService) Deactivate(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.SetActive(false, actorID)

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

func (s *PurchaseService) resolveItems(ctx context.Context, reqItems []PurchaseItemRequest) ([]purchase.PurchaseItemSpec, error) {
	productIDs := make([]uuid.UUID, 0, len(reqItems))
	for _, item := range reqItems {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	items := make([]purchase.PurchaseItemSpec, 0, len(reqItems))
	for _, item := range reqItems {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+item.ProductID.String())
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active: "+product.Name)
		}
		items = append(items, purchase.PurchaseItemSpec{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return items, nil
}

func (s *PurchaseService) publishEvents(ctx context.Context, p *purchase.PurchaseEntry) {
	if s.eventPublisher == nil {
		return
	}
	events := p.GetDomainEvents()
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation - event handling is async
		}
	}
	p.ClearDomainEvents()
}
