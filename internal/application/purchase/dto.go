package purchase

import (
	"time"

	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one line in a purchase entry request
type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseRequest records cylinders received from a vendor
type CreatePurchaseRequest struct {
	VendorID      uuid.UUID             `json:"vendor_id" binding:"required"`
	InvoiceNumber string                `json:"invoice_number" binding:"required"`
	PurchaseDate  time.Time             `json:"purchase_date" binding:"required"`
	Remarks       string                `json:"remarks"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseItemsRequest replaces the line items of a purchase entry
type UpdatePurchaseItemsRequest struct {
	Items []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseListFilter carries list query parameters
type PurchaseListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	VendorID *uuid.UUID
}

// PurchaseItemResponse is one purchase line item
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseResponse is the full view of a purchase entry
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	VendorID      uuid.UUID              `json:"vendor_id"`
	VendorName    string                 `json:"vendor_name"`
	InvoiceNumber string                 `json:"invoice_number"`
	PurchaseDate  time.Time              `json:"purchase_date"`
	Items         []PurchaseItemResponse `json:"items"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	Remarks       string                 `json:"remarks,omitempty"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ToPurchaseResponse converts the aggregate to its response DTO
func ToPurchaseResponse(p *purchase.PurchaseEntry) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return PurchaseResponse{
		ID:            p.ID,
		VendorID:      p.VendorID,
		VendorName:    p.VendorName,
		InvoiceNumber: p.InvoiceNumber,
		PurchaseDate:  p.PurchaseDate,
		Items:         items,
		TotalAmount:   p.TotalAmount,
		Remarks:       p.Remarks,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
