package purchase

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem is one received line on a purchase entry
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// PurchaseItemSpec carries line data into the aggregate constructor
type PurchaseItemSpec struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// PurchaseEntry records cylinders received from a vendor. Receiving a
// purchase drives the filled-stock reconciliation per line item.
type PurchaseEntry struct {
	shared.BaseAggregateRoot
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName    string          `gorm:"type:varchar(200)"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null;index"`
	PurchaseDate  time.Time       `gorm:"not null;index"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Remarks       string          `gorm:"type:text"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid"`
	UpdatedBy     uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PurchaseEntry) TableName() string {
	return "purchase_entries"
}

// NewPurchaseEntry creates a purchase entry with its line items and emits
// the received event
func NewPurchaseEntry(vendorID uuid.UUID, vendorName, invoiceNumber string, purchaseDate time.Time, items []PurchaseItemSpec, remarks string, createdBy uuid.UUID) (*PurchaseEntry, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice number is required")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Purchase date is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "At least one line item is required")
	}

	p := &PurchaseEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		VendorName:        vendorName,
		InvoiceNumber:     invoiceNumber,
		PurchaseDate:      purchaseDate,
		Remarks:           remarks,
		IsActive:          true,
		CreatedBy:         createdBy,
		UpdatedBy:         createdBy,
	}

	if err := p.setItems(items); err != nil {
		return nil, err
	}

	p.AddDomainEvent(NewPurchaseReceivedEvent(p))

	return p, nil
}

// UpdateItems replaces the line items and recomputes the total.
// Only allowed while the entry is active.
func (p *PurchaseEntry) UpdateItems(items []PurchaseItemSpec, actorID uuid.UUID) error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot update an inactive purchase entry")
	}
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "At least one line item is required")
	}

	p.Items = nil
	if err := p.setItems(items); err != nil {
		return err
	}
	p.UpdatedBy = actorID
	p.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles the active flag
func (p *PurchaseEntry) SetActive(active bool, actorID uuid.UUID) {
	p.IsActive = active
	p.UpdatedBy = actorID
	p.UpdatedAt = time.Now()
}

func (p *PurchaseEntry) setItems(items []PurchaseItemSpec) error {
	now := time.Now()
	total := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(items))
	for _, spec := range items {
		if spec.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if seen[spec.ProductID] {
			return shared.NewDomainError("DUPLICATE_PRODUCT", "Product appears more than once in line items")
		}
		if spec.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if spec.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		seen[spec.ProductID] = true
		amount := spec.UnitPrice.Mul(decimal.NewFromInt(int64(spec.Quantity)))
		total = total.Add(amount)
		p.Items = append(p.Items, PurchaseItem{
			ID:          uuid.New(),
			PurchaseID:  p.ID,
			ProductID:   spec.ProductID,
			ProductName: spec.ProductName,
			Quantity:    spec.Quantity,
			UnitPrice:   spec.UnitPrice,
			Amount:      amount,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	p.TotalAmount = total
	return nil
}
