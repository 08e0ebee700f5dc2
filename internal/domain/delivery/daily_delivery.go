package delivery

import (
	"fmt"
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus represents the lifecycle state of a daily delivery
type DeliveryStatus string

const (
	DeliveryStatusOpen            DeliveryStatus = "OPEN"
	DeliveryStatusActualsRecorded DeliveryStatus = "ACTUALS_RECORDED"
	DeliveryStatusClosed          DeliveryStatus = "CLOSED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusOpen, DeliveryStatusActualsRecorded, DeliveryStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryStatusOpen:
		return target == DeliveryStatusActualsRecorded || target == DeliveryStatusClosed
	case DeliveryStatusActualsRecorded:
		return target == DeliveryStatusClosed
	case DeliveryStatusClosed:
		return false // Terminal state
	}
	return false
}

// ItemStatus represents the reconciliation state of one delivery line item
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "PENDING"
	ItemStatusPartial  ItemStatus = "PARTIAL"
	ItemStatusComplete ItemStatus = "COMPLETE"
)

// DeliveryItem is a planned line item on a daily delivery
type DeliveryItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"`
	ProductName    string
	CategoryName   string
	IsCommercial   bool
	NoOfCylinders  int
	NoOfInvoices   int
	NoOfDeliveries int
	NoOfItems      int
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Selling price snapshot at dispatch time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DeliveryItem) TableName() string {
	return "delivery_items"
}

// ItemActual tracks the real outcome of one planned item: delivered and
// pending cylinder counts plus cash collected, against the planned quantity.
// One row per (delivery, product).
type ItemActual struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_actual_delivery_product,priority:1"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_actual_delivery_product,priority:2"`
	ProductName       string
	CategoryName      string
	IsCommercial      bool
	PlannedQuantity   int             `gorm:"not null;default:0"`
	DeliveredQuantity int             `gorm:"not null;default:0"`
	PendingQuantity   int             `gorm:"not null;default:0"`
	CashCollected     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // DeliveredQuantity * UnitPrice
	Status            ItemStatus      `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (ItemActual) TableName() string {
	return "item_actuals"
}

// recomputeStatus derives the item status from its quantities
func (a *ItemActual) recomputeStatus() {
	switch {
	case a.DeliveredQuantity > 0 && a.PendingQuantity == 0:
		a.Status = ItemStatusComplete
	case a.DeliveredQuantity > 0:
		a.Status = ItemStatusPartial
	default:
		a.Status = ItemStatusPending
	}
}

// DeliveryDriver links a driver to a daily delivery run
type DeliveryDriver struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null"`
	DriverName string    `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DeliveryDriver) TableName() string {
	return "delivery_drivers"
}

// DeliveryMetrics is the snapshot recomputed after each actuals update
type DeliveryMetrics struct {
	TotalPlanned    int             `json:"total_planned"`
	TotalDelivered  int             `json:"total_delivered"`
	TotalPending    int             `json:"total_pending"`
	CompletedItems  int             `json:"completed_items"`
	PendingItems    int             `json:"pending_items"`
	TotalInvoices   int             `json:"total_invoices"`
	TotalDeliveries int             `json:"total_deliveries"`
	CashCollected   decimal.Decimal `json:"cash_collected"`
	EmptyReturned   int             `json:"empty_returned"`
	DamagedReturned int             `json:"damaged_returned"`
}

// PlannedItemSpec carries planned item data into the aggregate constructor
type PlannedItemSpec struct {
	ProductID      uuid.UUID
	ProductName    string
	CategoryName   string
	IsCommercial   bool
	NoOfCylinders  int
	NoOfInvoices   int
	NoOfDeliveries int
	NoOfItems      int
	UnitPrice      decimal.Decimal
}

// DriverSpec carries driver data into the aggregate constructor
type DriverSpec struct {
	DriverID   uuid.UUID
	DriverName string
}

// ActualUpdate carries one item's actuals into UpdateActuals
type ActualUpdate struct {
	ProductID         uuid.UUID
	DeliveredQuantity int
	PendingQuantity   int
	CashCollected     decimal.Decimal
}

// ItemError describes a validation failure for one item in a batch update.
// Batch operations collect all item errors instead of failing on the first.
type ItemError struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// ActualsValidationError aggregates per-item validation failures
type ActualsValidationError struct {
	Items []ItemError `json:"items"`
}

// Error implements the error interface
func (e *ActualsValidationError) Error() string {
	return fmt.Sprintf("actuals validation failed for %d item(s)", len(e.Items))
}

// DailyDelivery represents one vehicle's daily run as an aggregate root.
// It owns the planned items and their actuals; the commercial mapping and
// stock ledger reference it by id only.
type DailyDelivery struct {
	shared.BaseAggregateRoot
	DeliveryDate  time.Time        `gorm:"not null;index"`
	VehicleID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	VehicleNumber string           `gorm:"type:varchar(20)"`
	Drivers       []DeliveryDriver `gorm:"foreignKey:DeliveryID"`
	Items         []DeliveryItem   `gorm:"foreignKey:DeliveryID"`
	Actuals       []ItemActual     `gorm:"foreignKey:DeliveryID"`
	Status        DeliveryStatus   `gorm:"type:varchar(20);not null;index"`
	StartTime     *time.Time
	ReturnTime    *time.Time
	Remarks       string          `gorm:"type:text"`
	CloseRemarks  string          `gorm:"type:text"`
	Metrics       DeliveryMetrics `gorm:"embedded;embeddedPrefix:metric_"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid"`
	UpdatedBy     uuid.UUID       `gorm:"type:uuid"`
	ClosedAt      *time.Time
}

// TableName returns the table name for GORM
func (DailyDelivery) TableName() string {
	return "daily_deliveries"
}

// NewDailyDelivery creates a delivery in OPEN state with its planned items
// and emits the created event that drives stock dispatch reconciliation
func NewDailyDelivery(date time.Time, vehicleID uuid.UUID, vehicleNumber string, drivers []DriverSpec, startTime *time.Time, remarks string, planned []PlannedItemSpec, createdBy uuid.UUID) (*DailyDelivery, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Delivery date is required")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle ID cannot be empty")
	}
	if len(drivers) == 0 {
		return nil, shared.NewDomainError("INVALID_DRIVERS", "At least one driver is required")
	}
	if len(planned) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "At least one planned item is required")
	}

	d := &DailyDelivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DeliveryDate:      date,
		VehicleID:         vehicleID,
		VehicleNumber:     vehicleNumber,
		Status:            DeliveryStatusOpen,
		StartTime:         startTime,
		Remarks:           remarks,
		CreatedBy:         createdBy,
		UpdatedBy:         createdBy,
	}

	now := time.Now()
	for _, spec := range drivers {
		if spec.DriverID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
		}
		d.Drivers = append(d.Drivers, DeliveryDriver{
			ID:         uuid.New(),
			DeliveryID: d.ID,
			DriverID:   spec.DriverID,
			DriverName: spec.DriverName,
			CreatedAt:  now,
		})
	}

	seen := make(map[uuid.UUID]bool, len(planned))
	for _, spec := range planned {
		if spec.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if seen[spec.ProductID] {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product appears more than once in planned items")
		}
		if spec.NoOfCylinders < 0 || spec.NoOfInvoices < 0 || spec.NoOfDeliveries < 0 || spec.NoOfItems < 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Planned counts cannot be negative")
		}
		if spec.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		seen[spec.ProductID] = true
		d.Items = append(d.Items, DeliveryItem{
			ID:             uuid.New(),
			DeliveryID:     d.ID,
			ProductID:      spec.ProductID,
			ProductName:    spec.ProductName,
			CategoryName:   spec.CategoryName,
			IsCommercial:   spec.IsCommercial,
			NoOfCylinders:  spec.NoOfCylinders,
			NoOfInvoices:   spec.NoOfInvoices,
			NoOfDeliveries: spec.NoOfDeliveries,
			NoOfItems:      spec.NoOfItems,
			UnitPrice:      spec.UnitPrice,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	d.RecomputeMetrics()
	d.AddDomainEvent(NewDeliveryCreatedEvent(d))

	return d, nil
}

// InitializeActuals creates one ItemActual per planned item, seeded with
// delivered = 0 and pending = planned cylinders
func (d *DailyDelivery) InitializeActuals(actorID uuid.UUID) error {
	if d.Status == DeliveryStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot initialize actuals on a closed delivery")
	}
	if len(d.Actuals) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Actuals already initialized for this delivery")
	}

	now := time.Now()
	for _, item := range d.Items {
		d.Actuals = append(d.Actuals, ItemActual{
			ID:              uuid.New(),
			DeliveryID:      d.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			CategoryName:    item.CategoryName,
			IsCommercial:    item.IsCommercial,
			PlannedQuantity: item.NoOfCylinders,
			PendingQuantity: item.NoOfCylinders,
			CashCollected:   decimal.Zero,
			UnitPrice:       item.UnitPrice,
			TotalAmount:     decimal.Zero,
			Status:          ItemStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	d.UpdatedBy = actorID
	d.UpdatedAt = now
	d.RecomputeMetrics()

	return nil
}

// UpdateActuals applies a batch of per-item actuals. Validation errors are
// collected across all offending items rather than failing on the first.
// The first successful call transitions the delivery to ACTUALS_RECORDED.
func (d *DailyDelivery) UpdateActuals(updates []ActualUpdate, actorID uuid.UUID) error {
	if d.Status == DeliveryStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update actuals on a closed delivery")
	}
	if len(d.Actuals) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Actuals have not been initialized for this delivery")
	}
	if len(updates) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one item update is required")
	}

	var itemErrs []ItemError
	for _, u := range updates {
		actual := d.actualByProduct(u.ProductID)
		if actual == nil {
			itemErrs = append(itemErrs, ItemError{ProductID: u.ProductID, Reason: "product is not on this delivery"})
			continue
		}
		if u.DeliveredQuantity < 0 || u.PendingQuantity < 0 {
			itemErrs = append(itemErrs, ItemError{ProductID: u.ProductID, Reason: "quantities cannot be negative"})
			continue
		}
		if u.DeliveredQuantity+u.PendingQuantity > actual.PlannedQuantity {
			itemErrs = append(itemErrs, ItemError{
				ProductID: u.ProductID,
				Reason:    fmt.Sprintf("delivered + pending (%d) exceeds planned (%d)", u.DeliveredQuantity+u.PendingQuantity, actual.PlannedQuantity),
			})
			continue
		}
		if u.CashCollected.IsNegative() {
			itemErrs = append(itemErrs, ItemError{ProductID: u.ProductID, Reason: "cash collected cannot be negative"})
			continue
		}
	}
	if len(itemErrs) > 0 {
		return &ActualsValidationError{Items: itemErrs}
	}

	now := time.Now()
	for _, u := range updates {
		actual := d.actualByProduct(u.ProductID)
		actual.DeliveredQuantity = u.DeliveredQuantity
		actual.PendingQuantity = u.PendingQuantity
		actual.CashCollected = actual.CashCollected.Add(u.CashCollected)
		actual.TotalAmount = actual.UnitPrice.Mul(decimal.NewFromInt(int64(u.DeliveredQuantity)))
		actual.recomputeStatus()
		actual.UpdatedAt = now
	}

	if d.Status == DeliveryStatusOpen {
		d.Status = DeliveryStatusActualsRecorded
	}
	d.UpdatedBy = actorID
	d.UpdatedAt = now
	d.RecomputeMetrics()

	return nil
}

// PendingItemCount returns the number of items still pending reconciliation.
// An uninitialized delivery counts every planned item as pending.
func (d *DailyDelivery) PendingItemCount() int {
	if len(d.Actuals) == 0 {
		return len(d.Items)
	}
	count := 0
	for _, a := range d.Actuals {
		if a.Status != ItemStatusComplete {
			count++
		}
	}
	return count
}

// Close transitions the delivery to CLOSED. Rejected while any item remains
// pending unless force is set; a forced close still reports the pending
// count through the metrics snapshot. Emits the closed event that drives
// stock return reconciliation.
func (d *DailyDelivery) Close(returnTime time.Time, emptyReturned, damagedReturned int, remarks string, force bool, actorID uuid.UUID) error {
	if d.Status == DeliveryStatusClosed {
		return shared.NewDomainError("ALREADY_CLOSED", "Delivery is already closed")
	}
	if emptyReturned < 0 || damagedReturned < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Returned counts cannot be negative")
	}
	if pending := d.PendingItemCount(); pending > 0 && !force {
		return shared.NewDomainError("PENDING_ITEMS", fmt.Sprintf("Delivery has %d item(s) pending reconciliation", pending))
	}

	now := time.Now()
	d.Status = DeliveryStatusClosed
	d.ReturnTime = &returnTime
	d.CloseRemarks = remarks
	d.ClosedAt = &now
	d.UpdatedBy = actorID
	d.UpdatedAt = now
	d.Metrics.EmptyReturned = emptyReturned
	d.Metrics.DamagedReturned = damagedReturned

	d.AddDomainEvent(NewDeliveryClosedEvent(d, emptyReturned, damagedReturned))

	return nil
}

// RecomputeMetrics rebuilds the metrics snapshot from items and actuals
func (d *DailyDelivery) RecomputeMetrics() {
	m := DeliveryMetrics{
		CashCollected:   decimal.Zero,
		EmptyReturned:   d.Metrics.EmptyReturned,
		DamagedReturned: d.Metrics.DamagedReturned,
	}
	for _, item := range d.Items {
		m.TotalPlanned += item.NoOfCylinders
		m.TotalInvoices += item.NoOfInvoices
		m.TotalDeliveries += item.NoOfDeliveries
	}
	for _, a := range d.Actuals {
		m.TotalDelivered += a.DeliveredQuantity
		m.TotalPending += a.PendingQuantity
		m.CashCollected = m.CashCollected.Add(a.CashCollected)
		if a.Status == ItemStatusComplete {
			m.CompletedItems++
		} else {
			m.PendingItems++
		}
	}
	if len(d.Actuals) == 0 {
		m.PendingItems = len(d.Items)
		m.TotalPending = m.TotalPlanned
	}
	d.Metrics = m
}

// IsOpen returns true if the delivery is open
func (d *DailyDelivery) IsOpen() bool {
	return d.Status == DeliveryStatusOpen
}

// IsClosed returns true if the delivery is closed
func (d *DailyDelivery) IsClosed() bool {
	return d.Status == DeliveryStatusClosed
}

// HasActuals returns true if actuals have been initialized
func (d *DailyDelivery) HasActuals() bool {
	return len(d.Actuals) > 0
}

// GetItem returns a planned item by product ID
func (d *DailyDelivery) GetItem(productID uuid.UUID) *DeliveryItem {
	for idx := range d.Items {
		if d.Items[idx].ProductID == productID {
			return &d.Items[idx]
		}
	}
	return nil
}

// GetActual returns an item actual by product ID
func (d *DailyDelivery) GetActual(productID uuid.UUID) *ItemActual {
	return d.actualByProduct(productID)
}

func (d *DailyDelivery) actualByProduct(productID uuid.UUID) *ItemActual {
	for idx := range d.Actuals {
		if d.Actuals[idx].ProductID == productID {
			return &d.Actuals[idx]
		}
	}
	return nil
}
