package stock

import (
	"context"
	"fmt"

	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// PurchaseReceivedHandler handles PurchaseReceivedEvent and adds the
// received quantities to filled stock, one delta per line item. A failing
// item becomes a pending reconciliation task; the purchase entry itself is
// already committed and stays committed.
type PurchaseReceivedHandler struct {
	reconciler *StockReconciler
	logger     *zap.Logger
}

// NewPurchaseReceivedHandler creates a new handler for purchase received events
func NewPurchaseReceivedHandler(reconciler *StockReconciler, logger *zap.Logger) *PurchaseReceivedHandler {
	return &PurchaseReceivedHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseReceivedHandler) EventTypes() []string {
	return []string{purchase.EventTypePurchaseReceived}
}

// Handle processes a PurchaseReceivedEvent by booking filled stock per item
func (h *PurchaseReceivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	receivedEvent, ok := event.(*purchase.PurchaseReceivedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", purchase.EventTypePurchaseReceived),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			purchase.EventTypePurchaseReceived, event.EventType())
	}

	h.logger.Info("processing purchase received event for filled stock",
		zap.String("purchase_id", receivedEvent.PurchaseID.String()),
		zap.String("invoice_number", receivedEvent.InvoiceNumber),
		zap.Int("items", len(receivedEvent.Items)),
	)

	purchaseID := receivedEvent.PurchaseID
	for _, item := range receivedEvent.Items {
		if item.Quantity <= 0 {
			continue
		}
		h.reconciler.Apply(ctx, stock.StockDelta{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Type:          stock.TransactionTypePurchase,
			Filled:        item.Quantity,
			ReferenceID:   &purchaseID,
			ReferenceType: purchase.AggregateTypePurchaseEntry,
			ActorID:       receivedEvent.CreatedBy,
		})
	}

	return nil
}

var _ shared.EventHandler = (*PurchaseReceivedHandler)(nil)
