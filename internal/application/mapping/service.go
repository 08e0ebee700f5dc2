package mapping

import (
	"context"
	"time"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/mapping"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MappingService handles customer allocation of delivered commercial stock
type MappingService struct {
	mappingRepo  mapping.DeliveryMappingRepository
	deliveryRepo delivery.DailyDeliveryRepository
	customerRepo partner.CustomerRepository
}

// NewMappingService creates a new MappingService
func NewMappingService(
	mappingRepo mapping.DeliveryMappingRepository,
	deliveryRepo delivery.DailyDeliveryRepository,
	customerRepo partner.CustomerRepository,
) *MappingService {
	return &MappingService{
		mappingRepo:  mappingRepo,
		deliveryRepo: deliveryRepo,
		customerRepo: customerRepo,
	}
}

// Create allocates delivered quantity to a customer. The product must be a
// commercial item with recorded actuals; the remaining quantity is
// re-validated inside the allocation transaction, so concurrent mappings
// cannot oversubscribe the delivered total.
func (s *MappingService) Create(ctx context.Context, req CreateMappingRequest, actorID uuid.UUID) (*MappingResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, req.DeliveryID)
	if err != nil {
		return nil, err
	}
	if d.Status == delivery.DeliveryStatusOpen {
		return nil, shared.NewDomainError("NO_ACTUALS", "Actuals must be recorded before mapping")
	}

	item := findItem(d, req.ProductID)
	if item == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_ON_DELIVERY", "Product is not part of this delivery")
	}
	if !item.IsCommercial {
		return nil, shared.NewDomainError("NOT_COMMERCIAL", "Only commercial products can be mapped to customers")
	}

	actual := findActual(d, req.ProductID)
	if actual == nil || actual.DeliveredQuantity <= 0 {
		return nil, shared.NewDomainError("NOTHING_DELIVERED", "No delivered quantity recorded for this product")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is not active")
	}

	m, err := mapping.NewDeliveryMapping(
		d.ID,
		item.ProductID,
		item.ProductName,
		customer.ID,
		customer.Name,
		req.Quantity,
		item.UnitPrice,
		req.IsCreditSale,
		mapping.PaymentMode(req.PaymentMode),
		req.InvoiceNumber,
		req.Remarks,
		actorID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.mappingRepo.CreateWithAllocation(ctx, m, actual.DeliveredQuantity); err != nil {
		return nil, err
	}

	response := ToMappingResponse(m)
	return &response, nil
}

// Delete removes a mapping and reverses any credit debit it posted. Deleting
// the same mapping twice returns ErrNotFound with no further ledger effect.
func (s *MappingService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*MappingResponse, error) {
	m, err := s.mappingRepo.DeleteWithReversal(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	response := ToMappingResponse(m)
	return &response, nil
}

// GetByID retrieves a mapping by ID
func (s *MappingService) GetByID(ctx context.Context, id uuid.UUID) (*MappingResponse, error) {
	m, err := s.mappingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMappingResponse(m)
	return &response, nil
}

// ListByDelivery retrieves all mappings for a delivery
func (s *MappingService) ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]MappingResponse, error) {
	mappings, err := s.mappingRepo.FindByDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	responses := make([]MappingResponse, len(mappings))
	for i, m := range mappings {
		responses[i] = ToMappingResponse(&m)
	}
	return responses, nil
}

// Summary reports, per commercial product on the delivery, how much of the
// delivered quantity has been mapped to customers and how much remains.
func (s *MappingService) Summary(ctx context.Context, deliveryID uuid.UUID) (*MappingSummaryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	mappedByProduct, err := s.mappingRepo.SumMappedByProduct(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	mappings, err := s.mappingRepo.FindByDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	summary := MappingSummaryResponse{
		DeliveryID:  deliveryID,
		GeneratedAt: time.Now(),
	}

	for _, item := range d.Items {
		if !item.IsCommercial {
			continue
		}
		delivered := 0
		if actual := findActual(d, item.ProductID); actual != nil {
			delivered = actual.DeliveredQuantity
		}
		mapped := mappedByProduct[item.ProductID]
		summary.Items = append(summary.Items, CommercialItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Delivered:   delivered,
			Mapped:      mapped,
			Remaining:   delivered - mapped,
			UnitPrice:   item.UnitPrice,
		})
		summary.TotalCommercial += delivered
		summary.TotalMapped += mapped
	}
	summary.TotalUnmapped = summary.TotalCommercial - summary.TotalMapped

	customers := make(map[uuid.UUID]struct{})
	for _, m := range mappings {
		customers[m.CustomerID] = struct{}{}
		summary.Mappings = append(summary.Mappings, ToMappingResponse(&m))
	}
	summary.MappedCustomers = len(customers)

	return &summary, nil
}

// CommercialItems reports the per-product allocation state for a delivery
func (s *MappingService) CommercialItems(ctx context.Context, deliveryID uuid.UUID) ([]CommercialItemResponse, error) {
	summary, err := s.Summary(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	return summary.Items, nil
}

func findItem(d *delivery.DailyDelivery, productID uuid.UUID) *delivery.DeliveryItem {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return &d.Items[i]
		}
	}
	return nil
}

func findActual(d *delivery.DailyDelivery, productID uuid.UUID) *delivery.ItemActual {
	for i := range d.Actuals {
		if d.Actuals[i].ProductID == productID {
			return &d.Actuals[i]
		}
	}
	return nil
}
