package handler

import (
	mappingapp "github.com/gasflow/backend/internal/application/mapping"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MappingHandler handles delivery mapping API endpoints
type MappingHandler struct {
	BaseHandler
	mappingService *mappingapp.MappingService
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(mappingService *mappingapp.MappingService) *MappingHandler {
	return &MappingHandler{
		mappingService: mappingService,
	}
}

// Create allocates part of a delivered commercial quantity to a customer
func (h *MappingHandler) Create(c *gin.Context) {
	var req mappingapp.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.mappingService.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Delete removes a mapping and reverses its credit effect
func (h *MappingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.mappingService.Delete(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// CommercialItems returns the allocation state of each commercial product
// on a delivery
func (h *MappingHandler) CommercialItems(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("deliveryId"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	items, err := h.mappingService.CommercialItems(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// ListByDelivery returns all mappings recorded against a delivery
func (h *MappingHandler) ListByDelivery(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("deliveryId"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	mappings, err := h.mappingService.ListByDelivery(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, mappings)
}

// Summary returns the allocation summary for a delivery
func (h *MappingHandler) Summary(c *gin.Context) {
	deliveryID, err := uuid.Parse(c.Param("deliveryId"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery ID format")
		return
	}

	summary, err := h.mappingService.Summary(c.Request.Context(), deliveryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
