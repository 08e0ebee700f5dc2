package purchase

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePurchaseEntry = "PurchaseEntry"

// Event type constants
const (
	EventTypePurchaseReceived = "PurchaseReceived"
)

// PurchaseItemInfo carries line data on purchase events
type PurchaseItemInfo struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

// PurchaseReceivedEvent is raised when a purchase entry is recorded.
// It drives the filled-stock reconciliation, one attempt per line item.
type PurchaseReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseID    uuid.UUID          `json:"purchase_id"`
	VendorID      uuid.UUID          `json:"vendor_id"`
	InvoiceNumber string             `json:"invoice_number"`
	PurchaseDate  time.Time          `json:"purchase_date"`
	Items         []PurchaseItemInfo `json:"items"`
	CreatedBy     uuid.UUID          `json:"created_by"`
}

// NewPurchaseReceivedEvent creates a new PurchaseReceivedEvent
func NewPurchaseReceivedEvent(p *PurchaseEntry) *PurchaseReceivedEvent {
	items := make([]PurchaseItemInfo, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
	}

	return &PurchaseReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceived, AggregateTypePurchaseEntry, p.ID),
		PurchaseID:      p.ID,
		VendorID:        p.VendorID,
		InvoiceNumber:   p.InvoiceNumber,
		PurchaseDate:    p.PurchaseDate,
		Items:           items,
		CreatedBy:       p.CreatedBy,
	}
}

// EventType returns the event type name
func (e *PurchaseReceivedEvent) EventType() string {
	return EventTypePurchaseReceived
}
