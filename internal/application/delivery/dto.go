package delivery

import (
	"time"

	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlannedItemRequest is one planned line in a create request
type PlannedItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	NoOfCylinders  int       `json:"no_of_cylinders" binding:"min=0"`
	NoOfInvoices   int       `json:"no_of_invoices" binding:"min=0"`
	NoOfDeliveries int       `json:"no_of_deliveries" binding:"min=0"`
	NoOfItems      int       `json:"no_of_items" binding:"min=0"`
}

// CreateDeliveryRequest is the payload for dispatching a daily delivery
type CreateDeliveryRequest struct {
	DeliveryDate time.Time            `json:"delivery_date" binding:"required"`
	VehicleID    uuid.UUID            `json:"vehicle_id" binding:"required"`
	DriverIDs    []uuid.UUID          `json:"driver_ids" binding:"required,min=1"`
	StartTime    *time.Time           `json:"start_time"`
	Remarks      string               `json:"remarks"`
	Items        []PlannedItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ActualItemRequest is one item's actuals in an update request
type ActualItemRequest struct {
	ProductID         uuid.UUID       `json:"product_id" binding:"required"`
	DeliveredQuantity int             `json:"delivered_quantity" binding:"min=0"`
	PendingQuantity   int             `json:"pending_quantity" binding:"min=0"`
	CashCollected     decimal.Decimal `json:"cash_collected"`
}

// UpdateActualsRequest is the payload for a batch actuals update
type UpdateActualsRequest struct {
	Items []ActualItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CloseDeliveryRequest is the payload for closing a delivery
type CloseDeliveryRequest struct {
	ReturnTime               time.Time `json:"return_time" binding:"required"`
	EmptyCylindersReturned   int       `json:"empty_cylinders_returned" binding:"min=0"`
	DamagedCylindersReturned int       `json:"damaged_cylinders_returned" binding:"min=0"`
	Remarks                  string    `json:"remarks"`
	Force                    bool      `json:"force"`
}

// DeliveryListFilter carries list query parameters
type DeliveryListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	VehicleID *uuid.UUID
	Status    *delivery.DeliveryStatus
	FromDate  *time.Time
	ToDate    *time.Time
}

// DriverResponse is a driver on a delivery
type DriverResponse struct {
	DriverID   uuid.UUID `json:"driver_id"`
	DriverName string    `json:"driver_name"`
}

// DeliveryItemResponse is a planned line item
type DeliveryItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	CategoryName   string          `json:"category_name"`
	IsCommercial   bool            `json:"is_commercial"`
	NoOfCylinders  int             `json:"no_of_cylinders"`
	NoOfInvoices   int             `json:"no_of_invoices"`
	NoOfDeliveries int             `json:"no_of_deliveries"`
	NoOfItems      int             `json:"no_of_items"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// ItemActualResponse is one item's actuals
type ItemActualResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	PlannedQuantity   int             `json:"planned_quantity"`
	DeliveredQuantity int             `json:"delivered_quantity"`
	PendingQuantity   int             `json:"pending_quantity"`
	CashCollected     decimal.Decimal `json:"cash_collected"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            string          `json:"status"`
}

// DeliveryResponse is the full view of a daily delivery
type DeliveryResponse struct {
	ID            uuid.UUID                `json:"id"`
	DeliveryDate  time.Time                `json:"delivery_date"`
	VehicleID     uuid.UUID                `json:"vehicle_id"`
	VehicleNumber string                   `json:"vehicle_number"`
	Status        string                   `json:"status"`
	StartTime     *time.Time               `json:"start_time,omitempty"`
	ReturnTime    *time.Time               `json:"return_time,omitempty"`
	Remarks       string                   `json:"remarks,omitempty"`
	CloseRemarks  string                   `json:"close_remarks,omitempty"`
	Drivers       []DriverResponse         `json:"drivers"`
	Items         []DeliveryItemResponse   `json:"items"`
	Actuals       []ItemActualResponse     `json:"actuals"`
	Metrics       delivery.DeliveryMetrics `json:"metrics"`
	Version       int                      `json:"version"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// DeliveryListItemResponse is the compact list view
type DeliveryListItemResponse struct {
	ID             uuid.UUID `json:"id"`
	DeliveryDate   time.Time `json:"delivery_date"`
	VehicleNumber  string    `json:"vehicle_number"`
	Status         string    `json:"status"`
	TotalPlanned   int       `json:"total_planned"`
	TotalDelivered int       `json:"total_delivered"`
	PendingItems   int       `json:"pending_items"`
	CreatedAt      time.Time `json:"created_at"`
}

// DeliverySummaryResponse aggregates delivery metrics over a period
type DeliverySummaryResponse struct {
	FromDate        time.Time       `json:"from_date"`
	ToDate          time.Time       `json:"to_date"`
	DeliveryCount   int             `json:"delivery_count"`
	OpenCount       int             `json:"open_count"`
	ClosedCount     int             `json:"closed_count"`
	TotalPlanned    int             `json:"total_planned"`
	TotalDelivered  int             `json:"total_delivered"`
	TotalPending    int             `json:"total_pending"`
	TotalCash       decimal.Decimal `json:"total_cash"`
	EmptyReturned   int             `json:"empty_returned"`
	DamagedReturned int             `json:"damaged_returned"`
}

// ToDeliveryResponse converts the aggregate to its full response DTO
func ToDeliveryResponse(d *delivery.DailyDelivery) DeliveryResponse {
	drivers := make([]DriverResponse, len(d.Drivers))
	for i, dr := range d.Drivers {
		drivers[i] = DriverResponse{DriverID: dr.DriverID, DriverName: dr.DriverName}
	}

	items := make([]DeliveryItemResponse, len(d.Items))
	for i, item := range d.Items {
		items[i] = DeliveryItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			CategoryName:   item.CategoryName,
			IsCommercial:   item.IsCommercial,
			NoOfCylinders:  item.NoOfCylinders,
			NoOfInvoices:   item.NoOfInvoices,
			NoOfDeliveries: item.NoOfDeliveries,
			NoOfItems:      item.NoOfItems,
			UnitPrice:      item.UnitPrice,
		}
	}

	actuals := make([]ItemActualResponse, len(d.Actuals))
	for i, a := range d.Actuals {
		actuals[i] = ItemActualResponse{
			ID:                a.ID,
			ProductID:         a.ProductID,
			ProductName:       a.ProductName,
			PlannedQuantity:   a.PlannedQuantity,
			DeliveredQuantity: a.DeliveredQuantity,
			PendingQuantity:   a.PendingQuantity,
			CashCollected:     a.CashCollected,
			UnitPrice:         a.UnitPrice,
			TotalAmount:       a.TotalAmount,
			Status:            string(a.Status),
		}
	}

	return DeliveryResponse{
		ID:            d.ID,
		DeliveryDate:  d.DeliveryDate,
		VehicleID:     d.VehicleID,
		VehicleNumber: d.VehicleNumber,
		Status:        string(d.Status),
		StartTime:     d.StartTime,
		ReturnTime:    d.ReturnTime,
		Remarks:       d.Remarks,
		CloseRemarks:  d.CloseRemarks,
		Drivers:       drivers,
		Items:         items,
		Actuals:       actuals,
		Metrics:       d.Metrics,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDeliveryListItemResponse converts the aggregate to its list DTO
func ToDeliveryListItemResponse(d *delivery.DailyDelivery) DeliveryListItemResponse {
	return DeliveryListItemResponse{
		ID:             d.ID,
		DeliveryDate:   d.DeliveryDate,
		VehicleNumber:  d.VehicleNumber,
		Status:         string(d.Status),
		TotalPlanned:   d.Metrics.TotalPlanned,
		TotalDelivered: d.Metrics.TotalDelivered,
		PendingItems:   d.Metrics.PendingItems,
		CreatedAt:      d.CreatedAt,
	}
}
