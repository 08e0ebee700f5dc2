package mapping

import (
	"time"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode represents how a mapped sale is settled
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCredit PaymentMode = "CREDIT"
	PaymentModeUPI    PaymentMode = "UPI"
	PaymentModeCheque PaymentMode = "CHEQUE"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCredit, PaymentModeUPI, PaymentModeCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMode
func (m PaymentMode) String() string {
	return string(m)
}

// DeliveryMapping assigns a quantity of a delivered commercial item to a
// specific customer, optionally as a credit sale. It references the delivery
// by id only; the delivery aggregate does not own mappings.
type DeliveryMapping struct {
	shared.BaseAggregateRoot
	DeliveryID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_mapping_delivery_product,priority:1"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_mapping_delivery_product,priority:2"`
	ProductName   string          `gorm:"type:varchar(200)"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(200)"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Quantity * UnitPrice
	IsCreditSale  bool            `gorm:"not null;default:false"`
	PaymentMode   PaymentMode     `gorm:"type:varchar(20);not null"`
	InvoiceNumber string          `gorm:"type:varchar(50)"`
	Remarks       string          `gorm:"type:text"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (DeliveryMapping) TableName() string {
	return "delivery_mappings"
}

// NewDeliveryMapping creates a mapping. The remaining-quantity check against
// the delivery's actuals happens atomically at write time in the repository,
// not here.
func NewDeliveryMapping(deliveryID, productID uuid.UUID, productName string, customerID uuid.UUID, customerName string, quantity int, unitPrice decimal.Decimal, isCreditSale bool, paymentMode PaymentMode, invoiceNumber, remarks string, createdBy uuid.UUID) (*DeliveryMapping, error) {
	if deliveryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DELIVERY", "Delivery ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if !paymentMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Unknown payment mode")
	}
	if isCreditSale && paymentMode != PaymentModeCredit {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Credit sales must use the CREDIT payment mode")
	}

	return &DeliveryMapping{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DeliveryID:        deliveryID,
		ProductID:         productID,
		ProductName:       productName,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Amount:            unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		IsCreditSale:      isCreditSale,
		PaymentMode:       paymentMode,
		InvoiceNumber:     invoiceNumber,
		Remarks:           remarks,
		CreatedBy:         createdBy,
	}, nil
}

// CommercialItem is the per-product allocation view for one delivery:
// how many units were delivered, how many are already mapped to customers,
// and how many remain available.
type CommercialItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Delivered   int             `json:"delivered"`
	Mapped      int             `json:"mapped"`
	Remaining   int             `json:"remaining"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// MappingSummary aggregates the allocation state of one delivery
type MappingSummary struct {
	DeliveryID      uuid.UUID `json:"delivery_id"`
	TotalCommercial int       `json:"total_commercial"`
	TotalMapped     int       `json:"total_mapped"`
	TotalUnmapped   int       `json:"total_unmapped"`
	MappedCustomers int       `json:"mapped_customers"`
	GeneratedAt     time.Time `json:"generated_at"`
}
