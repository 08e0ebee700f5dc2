package delivery

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeDailyDelivery = "DailyDelivery"

// Event type constants
const (
	EventTypeDeliveryCreated = "DeliveryCreated"
	EventTypeDeliveryClosed  = "DeliveryClosed"
)

// DeliveryItemInfo carries planned item data on delivery events
type DeliveryItemInfo struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	NoOfCylinders int       `json:"no_of_cylinders"`
}

// DeliveryCreatedEvent is raised when a delivery is dispatched.
// It drives the stock dispatch reconciliation (filled stock out, in-field in).
type DeliveryCreatedEvent struct {
	shared.BaseDomainEvent
	DeliveryID   uuid.UUID          `json:"delivery_id"`
	DeliveryDate time.Time          `json:"delivery_date"`
	VehicleID    uuid.UUID          `json:"vehicle_id"`
	Items        []DeliveryItemInfo `json:"items"`
	CreatedBy    uuid.UUID          `json:"created_by"`
}

// NewDeliveryCreatedEvent creates a new DeliveryCreatedEvent
func NewDeliveryCreatedEvent(d *DailyDelivery) *DeliveryCreatedEvent {
	items := make([]DeliveryItemInfo, len(d.Items))
	for i, item := range d.Items {
		items[i] = DeliveryItemInfo{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			NoOfCylinders: item.NoOfCylinders,
		}
	}

	return &DeliveryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryCreated, AggregateTypeDailyDelivery, d.ID),
		DeliveryID:      d.ID,
		DeliveryDate:    d.DeliveryDate,
		VehicleID:       d.VehicleID,
		Items:           items,
		CreatedBy:       d.CreatedBy,
	}
}

// EventType returns the event type name
func (e *DeliveryCreatedEvent) EventType() string {
	return EventTypeDeliveryCreated
}

// DeliveryClosedEvent is raised when a delivery is closed.
// It drives the stock return reconciliation (empty and damaged stock in).
type DeliveryClosedEvent struct {
	shared.BaseDomainEvent
	DeliveryID      uuid.UUID          `json:"delivery_id"`
	DeliveryDate    time.Time          `json:"delivery_date"`
	EmptyReturned   int                `json:"empty_returned"`
	DamagedReturned int                `json:"damaged_returned"`
	Items           []DeliveryItemInfo `json:"items"`
	ClosedBy        uuid.UUID          `json:"closed_by"`
}

// NewDeliveryClosedEvent creates a new DeliveryClosedEvent
func NewDeliveryClosedEvent(d *DailyDelivery, emptyReturned, damagedReturned int) *DeliveryClosedEvent {
	items := make([]DeliveryItemInfo, len(d.Items))
	for i, item := range d.Items {
		items[i] = DeliveryItemInfo{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			NoOfCylinders: item.NoOfCylinders,
		}
	}

	return &DeliveryClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryClosed, AggregateTypeDailyDelivery, d.ID),
		DeliveryID:      d.ID,
		DeliveryDate:    d.DeliveryDate,
		EmptyReturned:   emptyReturned,
		DamagedReturned: damagedReturned,
		Items:           items,
		ClosedBy:        d.UpdatedBy,
	}
}

// EventType returns the event type name
func (e *DeliveryClosedEvent) EventType() string {
	return EventTypeDeliveryClosed
}
