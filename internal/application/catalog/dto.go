package catalog

import (
	"time"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest registers a new cylinder product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	CategoryName string          `json:"category_name"`
	IsCommercial bool            `json:"is_commercial"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// UpdatePriceRequest changes a product's selling price. Existing delivery
// line items keep their snapshotted price.
type UpdatePriceRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir"`
	Category     string `form:"category"`
	IsCommercial *bool  `form:"is_commercial"`
	ActiveOnly   bool   `form:"active_only"`
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	IsCommercial bool            `json:"is_commercial"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToProductResponse converts the aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryName: p.CategoryName,
		IsCommercial: p.IsCommercial,
		SellingPrice: p.SellingPrice,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}
