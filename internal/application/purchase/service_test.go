package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/purchase"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseEntryRepository is a mock implementation of PurchaseEntryRepository
type MockPurchaseEntryRepository struct {
	mock.Mock
}

func (m *MockPurchaseEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.PurchaseEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseEntryRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]purchase.PurchaseEntry, error) {
	args := m.Called(ctx, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseEntryRepository) Save(ctx context.Context, p *purchase.PurchaseEntry) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, v *partner.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	callArgs := make([]interface{}, 0, len(events)+1)
	callArgs = append(callArgs, ctx)
	for _, event := range events {
		callArgs = append(callArgs, event)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

var (
	testVendorID  = uuid.New()
	testProductID = uuid.New()
	testActorID   = uuid.New()
)

func testVendor() *partner.Vendor {
	v, _ := partner.NewVendor("HP Gas Agency", "080-22334455", "Industrial Area")
	v.ID = testVendorID
	return v
}

func testProduct() catalog.Product {
	p, _ := catalog.NewProduct("LPG 14.2kg", "Domestic", false, decimal.NewFromInt(850))
	p.ID = testProductID
	return *p
}

func testCreateRequest() CreatePurchaseRequest {
	return CreatePurchaseRequest{
		VendorID:      testVendorID,
		InvoiceNumber: "INV-2026-0042",
		PurchaseDate:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Items: []PurchaseItemRequest{
			{ProductID: testProductID, Quantity: 50, UnitPrice: decimal.NewFromInt(600)},
		},
	}
}

func newTestService() (*PurchaseService, *MockPurchaseEntryRepository, *MockVendorRepository, *MockProductRepository) {
	purchaseRepo := new(MockPurchaseEntryRepository)
	vendorRepo := new(MockVendorRepository)
	productRepo := new(MockProductRepository)
	service := NewPurchaseService(purchaseRepo, vendorRepo, productRepo)
	return service, purchaseRepo, vendorRepo, productRepo
}

func TestPurchaseService_Create(t *testing.T) {
	t.Run("create purchase and publish event", func(t *testing.T) {
		service, purchaseRepo, vendorRepo, productRepo := newTestService()
		publisher := new(MockEventPublisher)
		service.SetEventPublisher(publisher)
		ctx := context.Background()

		vendorRepo.On("FindByID", ctx, testVendorID).Return(testVendor(), nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{testProductID}).Return([]catalog.Product{testProduct()}, nil)
		purchaseRepo.On("Save", ctx, mock.AnythingOfType("*purchase.PurchaseEntry")).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("*purchase.PurchaseReceivedEvent")).Return(nil)

		result, err := service.Create(ctx, testCreateRequest(), testActorID)

		assert.NoError(t, err)
		assert.Equal(t, "HP Gas Agency", result.VendorName)
		assert.Len(t, result.Items, 1)
		assert.True(t, decimal.NewFromInt(30000).Equal(result.TotalAmount))
		publisher.AssertExpectations(t)
	})

	t.Run("reject inactive vendor", func(t *testing.T) {
		service, _, vendorRepo, _ := newTestService()
		ctx := context.Background()

		vendor := testVendor()
		vendor.IsActive = false
		vendorRepo.On("FindByID", ctx, testVendorID).Return(vendor, nil)

		result, err := service.Create(ctx, testCreateRequest(), testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VENDOR_INACTIVE", domainErr.Code)
	})

	t.Run("reject unknown product", func(t *testing.T) {
		service, _, vendorRepo, productRepo := newTestService()
		ctx := context.Background()

		vendorRepo.On("FindByID", ctx, testVendorID).Return(testVendor(), nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{testProductID}).Return([]catalog.Product{}, nil)

		result, err := service.Create(ctx, testCreateRequest(), testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
	})
}

func TestPurchaseService_UpdateItems(t *testing.T) {
	t.Run("replace items recomputes totals", func(t *testing.T) {
		service, purchaseRepo, _, productRepo := newTestService()
		ctx := context.Background()

		p, err := purchase.NewPurchaseEntry(testVendorID, "HP Gas Agency", "INV-2026-0042",
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			[]purchase.PurchaseItemSpec{{ProductID: testProductID, ProductName: "LPG 14.2kg", Quantity: 50, UnitPrice: decimal.NewFromInt(600)}},
			"", testActorID)
		assert.NoError(t, err)
		p.ClearDomainEvents()

		purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{testProductID}).Return([]catalog.Product{testProduct()}, nil)
		purchaseRepo.On("Save", ctx, p).Return(nil)

		req := UpdatePurchaseItemsRequest{Items: []PurchaseItemRequest{
			{ProductID: testProductID, Quantity: 30, UnitPrice: decimal.NewFromInt(620)},
		}}
		result, err := service.UpdateItems(ctx, p.ID, req, testActorID)

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(18600).Equal(result.TotalAmount))
		purchaseRepo.AssertExpectations(t)
	})
}
