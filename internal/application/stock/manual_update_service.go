package stock

import (
	"context"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManualUpdateService re-runs the stock bookings for a purchase or delivery
// on demand. The event handlers normally do this work when the aggregate is
// committed; these operations exist so an operator can recover after a
// failed or missed event without touching the database by hand. Deltas
// already present in the stock log are skipped, so re-running is safe.
type ManualUpdateService struct {
	reconciler   *StockReconciler
	deliveryRepo delivery.DailyDeliveryRepository
	purchaseRepo purchase.PurchaseEntryRepository
	logger       *zap.Logger
}

// NewManualUpdateService creates a new ManualUpdateService
func NewManualUpdateService(
	reconciler *StockReconciler,
	deliveryRepo delivery.DailyDeliveryRepository,
	purchaseRepo purchase.PurchaseEntryRepository,
	logger *zap.Logger,
) *ManualUpdateService {
	return &ManualUpdateService{
		reconciler:   reconciler,
		deliveryRepo: deliveryRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// UpdateFromPurchase books the filled stock for every line item of the
// purchase entry. Returns the number of deltas actually applied.
func (s *ManualUpdateService) UpdateFromPurchase(ctx context.Context, purchaseID uuid.UUID, actorID uuid.UUID) (int, error) {
	entry, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("manual stock update from purchase",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("invoice_number", entry.InvoiceNumber),
	)

	applied := 0
	for _, item := range entry.Items {
		if item.Quantity <= 0 {
			continue
		}
		if s.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Type:          stock.TransactionTypePurchase,
			Filled:        item.Quantity,
			ReferenceID:   &purchaseID,
			ReferenceType: purchase.AggregateTypePurchaseEntry,
			ActorID:       actorID,
		}) {
			applied++
		}
	}
	return applied, nil
}

// UpdateFromDelivery books the dispatch movement (filled out, in-field in)
// for every planned item of the delivery.
func (s *ManualUpdateService) UpdateFromDelivery(ctx context.Context, deliveryID uuid.UUID, actorID uuid.UUID) (int, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("manual stock update from delivery dispatch",
		zap.String("delivery_id", deliveryID.String()),
		zap.Int("items", len(d.Items)),
	)

	applied := 0
	for _, item := range d.Items {
		if item.NoOfCylinders <= 0 {
			continue
		}
		if s.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Type:          stock.TransactionTypeDispatch,
			Filled:        -item.NoOfCylinders,
			InField:       item.NoOfCylinders,
			ReferenceID:   &deliveryID,
			ReferenceType: delivery.AggregateTypeDailyDelivery,
			ActorID:       actorID,
		}) {
			applied++
		}
	}
	return applied, nil
}

// UpdateFromReturn books returned empty and damaged cylinders against the
// delivery, spread over its line items by planned counts the same way the
// close handler does it. The delivery must be closed first.
func (s *ManualUpdateService) UpdateFromReturn(ctx context.Context, deliveryID uuid.UUID, req UpdateFromReturnRequest, actorID uuid.UUID) (int, error) {
	d, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return 0, err
	}
	if d.Status != delivery.DeliveryStatusClosed {
		return 0, shared.NewDomainError("DELIVERY_NOT_CLOSED", "Returns can only be booked for a closed delivery")
	}
	if req.EmptyReturned == 0 && req.DamagedReturned == 0 {
		return 0, nil
	}
	if len(d.Items) == 0 {
		return 0, shared.NewDomainError("NO_ITEMS", "Delivery has no items to book returns against")
	}

	s.logger.Info("manual stock update from delivery return",
		zap.String("delivery_id", deliveryID.String()),
		zap.Int("empty_returned", req.EmptyReturned),
		zap.Int("damaged_returned", req.DamagedReturned),
	)

	infos := make([]delivery.DeliveryItemInfo, len(d.Items))
	for i, item := range d.Items {
		infos[i] = delivery.DeliveryItemInfo{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			NoOfCylinders: item.NoOfCylinders,
		}
	}
	emptyShares := splitByPlanned(req.EmptyReturned, infos)
	damagedShares := splitByPlanned(req.DamagedReturned, infos)

	applied := 0
	for i, info := range infos {
		empty := emptyShares[i]
		damaged := damagedShares[i]
		if empty == 0 && damaged == 0 {
			continue
		}
		if s.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     info.ProductID,
			ProductName:   info.ProductName,
			Type:          stock.TransactionTypeReturn,
			Empty:         empty,
			Damaged:       damaged,
			InField:       -(empty + damaged),
			ReferenceID:   &deliveryID,
			ReferenceType: delivery.AggregateTypeDailyDelivery,
			ActorID:       actorID,
		}) {
			applied++
		}
	}
	return applied, nil
}
