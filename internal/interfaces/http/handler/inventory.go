package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/tajer/backend/internal/application/inventory"
)

// InventoryHandler handles stock read-model endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List returns per-product stock and sales summaries.
// GET /api/v1/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var filter inventoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.List(c.Request.Context(), platformID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns the summary for one product.
// GET /api/v1/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	summary, err := h.inventoryService.Get(c.Request.Context(), platformID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Overview returns platform-wide inventory totals.
// GET /api/v1/inventory/overview
func (h *InventoryHandler) Overview(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	overview, err := h.inventoryService.Overview(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}
