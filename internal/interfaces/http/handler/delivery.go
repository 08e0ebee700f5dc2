package handler

import (
	"time"

	deliveryapp "github.com/gasflow/backend/internal/application/delivery"
	"github.com/gasflow/backend/internal/domain/delivery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DailyDeliveryHandler handles daily delivery API endpoints
type DailyDeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
}

// NewDailyDeliveryHandler creates a new DailyDeliveryHandler
func NewDailyDeliveryHandler(deliveryService *deliveryapp.DeliveryService) *DailyDeliveryHandler {
	return &DailyDeliveryHandler{
		deliveryService: deliveryService,
	}
}

// deliveryListQuery represents list query parameters for daily deliveries
type deliveryListQuery struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	VehicleID string `form:"vehicle_id" binding:"omitempty,uuid"`
	Status    string `form:"status"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
}

func (q deliveryListQuery) toFilter() (deliveryapp.DeliveryListFilter, error) {
	filter := deliveryapp.DeliveryListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if q.VehicleID != "" {
		id, err := uuid.Parse(q.VehicleID)
		if err != nil {
			return filter, err
		}
		filter.VehicleID = &id
	}
	if q.Status != "" {
		status := delivery.DeliveryStatus(q.Status)
		filter.Status = &status
	}
	if q.FromDate != "" {
		from, err := time.Parse("2006-01-02", q.FromDate)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if q.ToDate != "" {
		to, err := time.Parse("2006-01-02", q.ToDate)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &to
	}
	return filter, nil
}

// Create dispatches a new daily delivery
func (h *DailyDeliveryHandler) Create(c *gin.Context) {
	var req deliveryapp.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.deliveryService.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns daily deliveries matching the query filters
func (h *DailyDeliveryHandler) List(c *gin.Context) {
	var query deliveryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid query parameter format")
		return
	}

	deliveries, total, err := h.deliveryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, deliveries, total, filter.Page, filter.PageSize)
}

// Summary aggregates delivery metrics over a date range
func (h *DailyDeliveryHandler) Summary(c *gin.Context) {
	var query deliveryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid query parameter format")
		return
	}

	summary, err := h.deliveryService.Summary(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetByID returns one daily delivery with items and actuals
func (h *DailyDeliveryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	resp, err := h.deliveryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// InitializeActuals seeds actuals rows from the planned items
func (h *DailyDeliveryHandler) InitializeActuals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.deliveryService.InitializeActuals(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateActuals records delivered and pending quantities for items
func (h *DailyDeliveryHandler) UpdateActuals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	var req deliveryapp.UpdateActualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.deliveryService.UpdateActuals(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecomputeMetrics recalculates the cached delivery metrics
func (h *DailyDeliveryHandler) RecomputeMetrics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	resp, err := h.deliveryService.RecomputeMetrics(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Close finalizes a delivery and records the cylinder returns
func (h *DailyDeliveryHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	var req deliveryapp.CloseDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.deliveryService.Close(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
