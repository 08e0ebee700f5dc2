package catalog

import (
	"context"

	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a cylinder or accessory SKU. The core flow consumes products
// as validated references carrying a selling price and a commercial flag.
type Product struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	CategoryName string          `gorm:"type:varchar(100)"`
	IsCommercial bool            `gorm:"not null;default:false"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product
func NewProduct(name, categoryName string, isCommercial bool, sellingPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CategoryName:      categoryName,
		IsCommercial:      isCommercial,
		SellingPrice:      sellingPrice,
		IsActive:          true,
	}, nil
}

// ProductRepository provides the product lookups the core flow needs
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, p *Product) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
