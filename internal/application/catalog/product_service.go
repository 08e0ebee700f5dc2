package catalog

import (
	"context"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService manages the cylinder product catalog. Prices live on the
// product as the current rate; delivery line items snapshot the rate at
// creation time and never follow later price changes.
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name, req.CategoryName, req.IsCommercial, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// List returns products with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Category != "" {
		f.Filters["category_name"] = filter.Category
	}
	if filter.IsCommercial != nil {
		f.Filters["is_commercial"] = *filter.IsCommercial
	}
	if filter.ActiveOnly {
		f.Filters["is_active"] = true
	}

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, total, nil
}

// UpdatePrice changes the current selling price
func (s *ProductService) UpdatePrice(ctx context.Context, id uuid.UUID, req UpdatePriceRequest) (*ProductResponse, error) {
	if req.SellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.SellingPrice = req.SellingPrice
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// SetActive activates or deactivates a product. Deactivation does not
// touch open deliveries that already carry the product.
func (s *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = active
	return s.productRepo.Save(ctx, p)
}
