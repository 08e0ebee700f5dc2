package stock

import (
	"context"
	"fmt"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// DeliveryCreatedHandler handles DeliveryCreatedEvent and moves the planned
// cylinder counts from filled stock into the field, one delta per line item.
// Filled stock may go negative; the register surfaces that as an alert
// rather than an error, since physical counts settle at return time.
type DeliveryCreatedHandler struct {
	reconciler *StockReconciler
	logger     *zap.Logger
}

// NewDeliveryCreatedHandler creates a new handler for delivery created events
func NewDeliveryCreatedHandler(reconciler *StockReconciler, logger *zap.Logger) *DeliveryCreatedHandler {
	return &DeliveryCreatedHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DeliveryCreatedHandler) EventTypes() []string {
	return []string{delivery.EventTypeDeliveryCreated}
}

// Handle processes a DeliveryCreatedEvent by dispatching stock per line item
func (h *DeliveryCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*delivery.DeliveryCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", delivery.EventTypeDeliveryCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			delivery.EventTypeDeliveryCreated, event.EventType())
	}

	h.logger.Info("processing delivery created event for stock dispatch",
		zap.String("delivery_id", createdEvent.DeliveryID.String()),
		zap.Int("items", len(createdEvent.Items)),
	)

	deliveryID := createdEvent.DeliveryID
	for _, item := range createdEvent.Items {
		if item.NoOfCylinders <= 0 {
			continue
		}
		h.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Type:          stock.TransactionTypeDispatch,
			Filled:        -item.NoOfCylinders,
			InField:       item.NoOfCylinders,
			ReferenceID:   &deliveryID,
			ReferenceType: delivery.AggregateTypeDailyDelivery,
			ActorID:       createdEvent.CreatedBy,
		})
	}

	return nil
}

var _ shared.EventHandler = (*DeliveryCreatedHandler)(nil)
