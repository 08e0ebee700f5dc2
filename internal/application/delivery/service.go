package delivery

import (
	"context"

	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gasflow/backend/internal/domain/partner"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryService handles daily delivery business operations
type DeliveryService struct {
	deliveryRepo   delivery.DailyDeliveryRepository
	vehicleRepo    partner.VehicleRepository
	driverRepo     partner.DriverRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	deliveryRepo delivery.DailyDeliveryRepository,
	vehicleRepo partner.VehicleRepository,
	driverRepo partner.DriverRepository,
	productRepo catalog.ProductRepository,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		vehicleRepo:  vehicleRepo,
		driverRepo:   driverRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DeliveryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create dispatches a new daily delivery. Vehicle, drivers, and products are
// validated against the master data; product names and prices are snapshotted
// onto the delivery so later master-data edits do not rewrite history.
func (s *DeliveryService) Create(ctx context.Context, req CreateDeliveryRequest, actorID uuid.UUID) (*DeliveryResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		return nil, shared.NewDomainError("VEHICLE_INACTIVE", "Vehicle is not active")
	}

	drivers := make([]delivery.DriverSpec, 0, len(req.DriverIDs))
	for _, driverID := range req.DriverIDs {
		driver, err := s.driverRepo.FindByID(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if !driver.IsActive {
			return nil, shared.NewDomainError("DRIVER_INACTIVE", "Driver is not active")
		}
		drivers = append(drivers, delivery.DriverSpec{
			DriverID:   driver.ID,
			DriverName: driver.Name,
		})
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	planned := make([]delivery.PlannedItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist: "+item.ProductID.String())
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active: "+product.Name)
		}
		planned = append(planned, delivery.PlannedItemSpec{
			ProductID:      product.ID,
			ProductName:    product.Name,
			CategoryName:   product.CategoryName,
			IsCommercial:   product.IsCommercial,
			NoOfCylinders:  item.NoOfCylinders,
			NoOfInvoices:   item.NoOfInvoices,
			NoOfDeliveries: item.NoOfDeliveries,
			NoOfItems:      item.NoOfItems,
			UnitPrice:      product.SellingPrice,
		})
	}

	d, err := delivery.NewDailyDelivery(req.DeliveryDate, vehicle.ID, vehicle.VehicleNumber, drivers, req.StartTime, req.Remarks, planned, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)

	response := ToDeliveryResponse(d)
	return &response, nil
}

// GetByID retrieves a delivery by ID
func (s *DeliveryService) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// List retrieves deliveries with filtering and pagination
func (s *DeliveryService) List(ctx context.Context, filter DeliveryListFilter) ([]DeliveryListItemResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "delivery_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.VehicleID != nil {
		domainFilter.Filters["vehicle_id"] = *filter.VehicleID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}

	var (
		deliveries []delivery.DailyDelivery
		err        error
	)
	if filter.FromDate != nil && filter.ToDate != nil {
		deliveries, err = s.deliveryRepo.FindByDateRange(ctx, *filter.FromDate, *filter.ToDate, domainFilter)
	} else {
		deliveries, err = s.deliveryRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.deliveryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DeliveryListItemResponse, len(deliveries))
	for i, d := range deliveries {
		responses[i] = ToDeliveryListItemResponse(&d)
	}
	return responses, total, nil
}

// InitializeActuals seeds the actuals sheet from the planned items
func (s *DeliveryService) InitializeActuals(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.InitializeActuals(actorID); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// UpdateActuals applies a batch of item actuals. Validation runs across the
// whole batch and reports every failing item before anything is applied.
func (s *DeliveryService) UpdateActuals(ctx context.Context, id uuid.UUID, req UpdateActualsRequest, actorID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make([]delivery.ActualUpdate, len(req.Items))
	for i, item := range req.Items {
		updates[i] = delivery.ActualUpdate{
			ProductID:         item.ProductID,
			DeliveredQuantity: item.DeliveredQuantity,
			PendingQuantity:   item.PendingQuantity,
			CashCollected:     item.CashCollected,
		}
	}

	if err := d.UpdateActuals(updates, actorID); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// Close closes the delivery and records the vehicle return. A close with
// pending items is rejected unless force is set.
func (s *DeliveryService) Close(ctx context.Context, id uuid.UUID, req CloseDeliveryRequest, actorID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Close(req.ReturnTime, req.EmptyCylindersReturned, req.DamagedCylindersReturned, req.Remarks, req.Force, actorID); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)

	response := ToDeliveryResponse(d)
	return &response, nil
}

// RecomputeMetrics rebuilds the metrics snapshot from the stored rows
func (s *DeliveryService) RecomputeMetrics(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.RecomputeMetrics()

	if err := s.deliveryRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// Summary aggregates delivery metrics over a date range
func (s *DeliveryService) Summary(ctx context.Context, filter DeliveryListFilter) (*DeliverySummaryResponse, error) {
	if filter.FromDate == nil || filter.ToDate == nil {
		return nil, shared.NewDomainError("INVALID_RANGE", "Both from and to dates are required")
	}

	domainFilter := shared.Filter{Page: 1, PageSize: 1000, OrderBy: "delivery_date", OrderDir: "asc"}
	deliveries, err := s.deliveryRepo.FindByDateRange(ctx, *filter.FromDate, *filter.ToDate, domainFilter)
	if err != nil {
		return nil, err
	}

	summary := DeliverySummaryResponse{
		FromDate:  *filter.FromDate,
		ToDate:    *filter.ToDate,
		TotalCash: decimal.Zero,
	}
	for _, d := range deliveries {
		summary.DeliveryCount++
		if d.Status == delivery.DeliveryStatusClosed {
			summary.ClosedCount++
		} else {
			summary.OpenCount++
		}
		summary.TotalPlanned += d.Metrics.TotalPlanned
		summary.TotalDelivered += d.Metrics.TotalDelivered
		summary.TotalPending += d.Metrics.TotalPending
		summary.TotalCash = summary.TotalCash.Add(d.Metrics.CashCollected)
		summary.EmptyReturned += d.Metrics.EmptyReturned
		summary.DamagedReturned += d.Metrics.DamagedReturned
	}
	return &summary, nil
}

func (s *DeliveryService) publishEvents(ctx context.Context, d *delivery.DailyDelivery) {
	if s.eventPublisher == nil {
		return
	}
	events := d.GetDomainEvents()
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation - event handling is async
		}
	}
	d.ClearDomainEvents()
}
