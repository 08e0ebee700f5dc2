package mapping

import (
	"context"
	"testing"
	"time"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/mapping"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDeliveryMappingRepository is a mock implementation of DeliveryMappingRepository
type MockDeliveryMappingRepository struct {
	mock.Mock
}

func (m *MockDeliveryMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*mapping.DeliveryMapping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mapping.DeliveryMapping), args.Error(1)
}

func (m *MockDeliveryMappingRepository) FindByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]mapping.DeliveryMapping, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mapping.DeliveryMapping), args.Error(1)
}

func (m *MockDeliveryMappingRepository) SumMappedQuantity(ctx context.Context, deliveryID, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, deliveryID, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliveryMappingRepository) SumMappedByProduct(ctx context.Context, deliveryID uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockDeliveryMappingRepository) CreateWithAllocation(ctx context.Context, dm *mapping.DeliveryMapping, deliveredQuantity int) error {
	args := m.Called(ctx, dm, deliveredQuantity)
	return args.Error(0)
}

func (m *MockDeliveryMappingRepository) DeleteWithReversal(ctx context.Context, id, actorID uuid.UUID) (*mapping.DeliveryMapping, error) {
	args := m.Called(ctx, id, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mapping.DeliveryMapping), args.Error(1)
}

// MockDailyDeliveryRepository is a mock implementation of DailyDeliveryRepository
type MockDailyDeliveryRepository struct {
	mock.Mock
}

func (m *MockDailyDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.DailyDelivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.DailyDelivery), args.Error(1)
}

func (m *MockDailyDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.DailyDelivery), args.Error(1)
}

func (m *MockDailyDeliveryRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.DailyDelivery), args.Error(1)
}

func (m *MockDailyDeliveryRepository) FindByVehicle(ctx context.Context, vehicleID uuid.UUID, filter shared.Filter) ([]delivery.DailyDelivery, error) {
	args := m.Called(ctx, vehicleID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.DailyDelivery), args.Error(1)
}

func (m *MockDailyDeliveryRepository) Save(ctx context.Context, d *delivery.DailyDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDailyDeliveryRepository) SaveWithLock(ctx context.Context, d *delivery.DailyDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDailyDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *partner.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers
var (
	testVehicleID  = uuid.New()
	testDriverID   = uuid.New()
	testProductID  = uuid.New()
	testCustomerID = uuid.New()
	testActorID    = uuid.New()
)

func testCustomer() *partner.Customer {
	c, _ := partner.NewCustomer("Hotel Annapurna", "9900112233", "MG Road", decimal.NewFromInt(50000))
	c.ID = testCustomerID
	return c
}

func deliveryWithActuals(t *testing.T, delivered int, commercial bool) *delivery.DailyDelivery {
	t.Helper()
	d, err := delivery.NewDailyDelivery(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		testVehicleID,
		"KA-01-AB-1234",
		[]delivery.DriverSpec{{DriverID: testDriverID, DriverName: "Ravi Kumar"}},
		nil,
		"",
		[]delivery.PlannedItemSpec{{
			ProductID:     testProductID,
			ProductName:   "LPG 19kg",
			CategoryName:  "Commercial",
			IsCommercial:  commercial,
			NoOfCylinders: 10,
			UnitPrice:     decimal.NewFromInt(1500),
		}},
		testActorID,
	)
	assert.NoError(t, err)
	d.ClearDomainEvents()
	assert.NoError(t, d.InitializeActuals(testActorID))
	if delivered > 0 {
		assert.NoError(t, d.UpdateActuals([]delivery.ActualUpdate{
			{ProductID: testProductID, DeliveredQuantity: delivered, PendingQuantity: 10 - delivered},
		}, testActorID))
	}
	return d
}

func newTestService() (*MappingService, *MockDeliveryMappingRepository, *MockDailyDeliveryRepository, *MockCustomerRepository) {
	mappingRepo := new(MockDeliveryMappingRepository)
	deliveryRepo := new(MockDailyDeliveryRepository)
	customerRepo := new(MockCustomerRepository)
	service := NewMappingService(mappingRepo, deliveryRepo, customerRepo)
	return service, mappingRepo, deliveryRepo, customerRepo
}

func testCreateRequest(quantity int) CreateMappingRequest {
	return CreateMappingRequest{
		ProductID:   testProductID,
		CustomerID:  testCustomerID,
		Quantity:    quantity,
		PaymentMode: string(mapping.PaymentModeCash),
	}
}

func TestMappingService_Create(t *testing.T) {
	t.Run("create mapping successfully", func(t *testing.T) {
		service, mappingRepo, deliveryRepo, customerRepo := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 6, true)
		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		customerRepo.On("FindByID", ctx, testCustomerID).Return(testCustomer(), nil)
		mappingRepo.On("CreateWithAllocation", ctx, mock.AnythingOfType("*mapping.DeliveryMapping"), 6).Return(nil)

		req := testCreateRequest(4)
		req.DeliveryID = d.ID
		result, err := service.Create(ctx, req, testActorID)

		assert.NoError(t, err)
		assert.Equal(t, "LPG 19kg", result.ProductName)
		assert.Equal(t, "Hotel Annapurna", result.CustomerName)
		assert.Equal(t, 4, result.Quantity)
		assert.True(t, decimal.NewFromInt(6000).Equal(result.Amount))
		mappingRepo.AssertExpectations(t)
	})

	t.Run("reject mapping before actuals", func(t *testing.T) {
		service, _, deliveryRepo, _ := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 0, true)
		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)

		req := testCreateRequest(2)
		req.DeliveryID = d.ID
		result, err := service.Create(ctx, req, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ACTUALS", domainErr.Code)
	})

	t.Run("reject non-commercial product", func(t *testing.T) {
		service, _, deliveryRepo, _ := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 6, false)
		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)

		req := testCreateRequest(2)
		req.DeliveryID = d.ID
		result, err := service.Create(ctx, req, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_COMMERCIAL", domainErr.Code)
	})

	t.Run("propagate over-allocation from repository", func(t *testing.T) {
		service, mappingRepo, deliveryRepo, customerRepo := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 6, true)
		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		customerRepo.On("FindByID", ctx, testCustomerID).Return(testCustomer(), nil)
		mappingRepo.On("CreateWithAllocation", ctx, mock.AnythingOfType("*mapping.DeliveryMapping"), 6).
			Return(shared.ErrQuantityExceeded)

		req := testCreateRequest(5)
		req.DeliveryID = d.ID
		result, err := service.Create(ctx, req, testActorID)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrQuantityExceeded)
	})

	t.Run("reject credit sale with cash mode", func(t *testing.T) {
		service, _, deliveryRepo, customerRepo := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 6, true)
		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		customerRepo.On("FindByID", ctx, testCustomerID).Return(testCustomer(), nil)

		req := testCreateRequest(2)
		req.DeliveryID = d.ID
		req.IsCreditSale = true
		result, err := service.Create(ctx, req, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_MODE", domainErr.Code)
	})
}

func TestMappingService_Delete(t *testing.T) {
	t.Run("delete returns the removed mapping", func(t *testing.T) {
		service, mappingRepo, _, _ := newTestService()
		ctx := context.Background()

		m, err := mapping.NewDeliveryMapping(uuid.New(), testProductID, "LPG 19kg", testCustomerID, "Hotel Annapurna",
			3, decimal.NewFromInt(1500), false, mapping.PaymentModeCash, "", "", testActorID)
		assert.NoError(t, err)
		mappingRepo.On("DeleteWithReversal", ctx, m.ID, testActorID).Return(m, nil)

		result, err := service.Delete(ctx, m.ID, testActorID)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Quantity)
	})

	t.Run("second delete returns not found", func(t *testing.T) {
		service, mappingRepo, _, _ := newTestService()
		ctx := context.Background()

		id := uuid.New()
		mappingRepo.On("DeleteWithReversal", ctx, id, testActorID).Return(nil, shared.ErrNotFound)

		result, err := service.Delete(ctx, id, testActorID)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMappingService_Summary(t *testing.T) {
	t.Run("summarize allocation state", func(t *testing.T) {
		service, mappingRepo, deliveryRepo, _ := newTestService()
		ctx := context.Background()

		d := deliveryWithActuals(t, 6, true)
		m, err := mapping.NewDeliveryMapping(d.ID, testProductID, "LPG 19kg", testCustomerID, "Hotel Annapurna",
			4, decimal.NewFromInt(1500), false, mapping.PaymentModeCash, "", "", testActorID)
		assert.NoError(t, err)

		deliveryRepo.On("FindByID", ctx, d.ID).Return(d, nil)
		mappingRepo.On("SumMappedByProduct", ctx, d.ID).Return(map[uuid.UUID]int{testProductID: 4}, nil)
		mappingRepo.On("FindByDelivery", ctx, d.ID).Return([]mapping.DeliveryMapping{*m}, nil)

		result, err := service.Summary(ctx, d.ID)

		assert.NoError(t, err)
		assert.Equal(t, 6, result.TotalCommercial)
		assert.Equal(t, 4, result.TotalMapped)
		assert.Equal(t, 2, result.TotalUnmapped)
		assert.Equal(t, 1, result.MappedCustomers)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 2, result.Items[0].Remaining)
	})
}
