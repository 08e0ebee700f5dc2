package mapping

import (
	"time"

	"github.com/gasflow/backend/internal/domain/mapping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMappingRequest allocates part of a delivered commercial quantity to
// a customer
type CreateMappingRequest struct {
	DeliveryID    uuid.UUID `json:"delivery_id" binding:"required"`
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	CustomerID    uuid.UUID `json:"customer_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	IsCreditSale  bool      `json:"is_credit_sale"`
	PaymentMode   string    `json:"payment_mode" binding:"required"`
	InvoiceNumber string    `json:"invoice_number"`
	Remarks       string    `json:"remarks"`
}

// MappingResponse is the view of one customer allocation
type MappingResponse struct {
	ID            uuid.UUID       `json:"id"`
	DeliveryID    uuid.UUID       `json:"delivery_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	IsCreditSale  bool            `json:"is_credit_sale"`
	PaymentMode   string          `json:"payment_mode"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CommercialItemResponse is one commercial product's allocation state
type CommercialItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Delivered   int             `json:"delivered"`
	Mapped      int             `json:"mapped"`
	Remaining   int             `json:"remaining"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// MappingSummaryResponse is the allocation summary for one delivery
type MappingSummaryResponse struct {
	DeliveryID      uuid.UUID                `json:"delivery_id"`
	TotalCommercial int                      `json:"total_commercial"`
	TotalMapped     int                      `json:"total_mapped"`
	TotalUnmapped   int                      `json:"total_unmapped"`
	MappedCustomers int                      `json:"mapped_customers"`
	Items           []CommercialItemResponse `json:"items"`
	Mappings        []MappingResponse        `json:"mappings"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// ToMappingResponse converts the aggregate to its response DTO
func ToMappingResponse(m *mapping.DeliveryMapping) MappingResponse {
	return MappingResponse{
		ID:            m.ID,
		DeliveryID:    m.DeliveryID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Amount:        m.Amount,
		IsCreditSale:  m.IsCreditSale,
		PaymentMode:   string(m.PaymentMode),
		InvoiceNumber: m.InvoiceNumber,
		Remarks:       m.Remarks,
		CreatedAt:     m.CreatedAt,
	}
}
