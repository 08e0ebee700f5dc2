package stock

import (
	"context"
	"fmt"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// DeliveryClosedHandler handles DeliveryClosedEvent and books the returned
// empty and damaged cylinders back into stock. Returned counts are recorded
// at delivery level, so they are spread over the delivery's line items in
// proportion to the planned cylinder counts; the last item absorbs any
// remainder so the totals always match the close.
type DeliveryClosedHandler struct {
	reconciler *StockReconciler
	logger     *zap.Logger
}

// NewDeliveryClosedHandler creates a new handler for delivery closed events
func NewDeliveryClosedHandler(reconciler *StockReconciler, logger *zap.Logger) *DeliveryClosedHandler {
	return &DeliveryClosedHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DeliveryClosedHandler) EventTypes() []string {
	return []string{delivery.EventTypeDeliveryClosed}
}

// Handle processes a DeliveryClosedEvent by booking the returned cylinders
func (h *DeliveryClosedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	closedEvent, ok := event.(*delivery.DeliveryClosedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", delivery.EventTypeDeliveryClosed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			delivery.EventTypeDeliveryClosed, event.EventType())
	}

	h.logger.Info("processing delivery closed event for stock return",
		zap.String("delivery_id", closedEvent.DeliveryID.String()),
		zap.Int("empty_returned", closedEvent.EmptyReturned),
		zap.Int("damaged_returned", closedEvent.DamagedReturned),
	)

	if closedEvent.EmptyReturned == 0 && closedEvent.DamagedReturned == 0 {
		return nil
	}
	if len(closedEvent.Items) == 0 {
		h.logger.Warn("delivery closed event carries no items, nothing to book",
			zap.String("delivery_id", closedEvent.DeliveryID.String()),
		)
		return nil
	}

	deliveryID := closedEvent.DeliveryID
	emptyShares := splitByPlanned(closedEvent.EmptyReturned, closedEvent.Items)
	damagedShares := splitByPlanned(closedEvent.DamagedReturned, closedEvent.Items)

	for i, item := range closedEvent.Items {
		empty := emptyShares[i]
		damaged := damagedShares[i]
		if empty == 0 && damaged == 0 {
			continue
		}
		h.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Type:          stock.TransactionTypeReturn,
			Empty:         empty,
			Damaged:       damaged,
			InField:       -(empty + damaged),
			ReferenceID:   &deliveryID,
			ReferenceType: delivery.AggregateTypeDailyDelivery,
			ActorID:       closedEvent.ClosedBy,
		})
	}

	return nil
}

// splitByPlanned distributes total over the items weighted by their planned
// cylinder counts. The last item absorbs rounding remainder.
func splitByPlanned(total int, items []delivery.DeliveryItemInfo) []int {
	shares := make([]int, len(items))
	if total == 0 {
		return shares
	}

	planned := 0
	for _, item := range items {
		planned += item.NoOfCylinders
	}
	if planned == 0 {
		shares[len(shares)-1] = total
		return shares
	}

	assigned := 0
	for i, item := range items {
		shares[i] = total * item.NoOfCylinders / planned
		assigned += shares[i]
	}
	shares[len(shares)-1] += total - assigned
	return shares
}

var _ shared.EventHandler = (*DeliveryClosedHandler)(nil)
