package handler

import (
	stockapp "github.com/gasflow/backend/internal/application/stock"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock register API endpoints
type StockHandler struct {
	BaseHandler
	stockService          *stockapp.StockService
	manualUpdateService   *stockapp.ManualUpdateService
	reconciliationService *stockapp.ReconciliationService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(
	stockService *stockapp.StockService,
	manualUpdateService *stockapp.ManualUpdateService,
	reconciliationService *stockapp.ReconciliationService,
) *StockHandler {
	return &StockHandler{
		stockService:          stockService,
		manualUpdateService:   manualUpdateService,
		reconciliationService: reconciliationService,
	}
}

// UpdateFromPurchaseRequest replays a purchase entry into the stock register
type UpdateFromPurchaseRequest struct {
	PurchaseID uuid.UUID `json:"purchase_id" binding:"required"`
}

// appliedResponse reports how many item deltas a replay applied
type appliedResponse struct {
	Applied int `json:"applied"`
}

// retryAllResponse reports the outcome of a reconciliation sweep
type retryAllResponse struct {
	Resolved int `json:"resolved"`
	Failed   int `json:"failed"`
}

func listFilter(c *gin.Context) (shared.Filter, error) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		return shared.Filter{}, err
	}
	return shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}, nil
}

// List returns per-product stock balances
func (h *StockHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Summary returns aggregate totals across all products
func (h *StockHandler) Summary(c *gin.Context) {
	summary, err := h.stockService.Summary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Transactions returns the append-only stock movement log
func (h *StockHandler) Transactions(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		filter.Filters = map[string]interface{}{"product_id": productID}
	}

	transactions, err := h.stockService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transactions)
}

// Adjust applies a manual correction to one product's balances
func (h *StockHandler) Adjust(c *gin.Context) {
	var req stockapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entry, err := h.stockService.Adjust(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Initialize seeds a product's opening balances
func (h *StockHandler) Initialize(c *gin.Context) {
	var req stockapp.InitializeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entry, err := h.stockService.Initialize(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// UpdateFromPurchase replays a purchase entry's receipts into the register.
// Already-applied items are skipped.
func (h *StockHandler) UpdateFromPurchase(c *gin.Context) {
	var req UpdateFromPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applied, err := h.manualUpdateService.UpdateFromPurchase(c.Request.Context(), req.PurchaseID, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appliedResponse{Applied: applied})
}

// UpdateFromDelivery replays a delivery's dispatch deltas into the register
func (h *StockHandler) UpdateFromDelivery(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("deliveryId"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applied, err := h.manualUpdateService.UpdateFromDelivery(c.Request.Context(), deliveryID, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appliedResponse{Applied: applied})
}

// UpdateFromReturn books returned cylinders against a closed delivery
func (h *StockHandler) UpdateFromReturn(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("deliveryId"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	var req stockapp.UpdateFromReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applied, err := h.manualUpdateService.UpdateFromReturn(c.Request.Context(), deliveryID, req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appliedResponse{Applied: applied})
}

// ReconciliationPending lists unresolved stock gaps
func (h *StockHandler) ReconciliationPending(c *gin.Context) {
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tasks, total, err := h.reconciliationService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// ReconciliationRetry re-applies one parked stock delta
func (h *StockHandler) ReconciliationRetry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	task, err := h.reconciliationService.Retry(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// ReconciliationRetryAll sweeps every pending task once
func (h *StockHandler) ReconciliationRetryAll(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resolved, failed, err := h.reconciliationService.RetryAll(c.Request.Context(), actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, retryAllResponse{Resolved: resolved, Failed: failed})
}
