package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordersapp "github.com/tajer/backend/internal/application/orders"
)

// IdempotencyKeyHeader carries the client-generated submission key
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *ordersapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *ordersapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create submits an order on behalf of the platform staff.
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req ordersapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	order, err := h.orderService.Create(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// CreatePublic submits an order from a storefront landing page. Public.
// POST /api/v1/public/:subdomain/orders
func (h *OrderHandler) CreatePublic(c *gin.Context) {
	var req ordersapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	order, err := h.orderService.CreatePublic(c.Request.Context(), c.Param("subdomain"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get returns one order with its items.
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), platformID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber looks an order up by its display number.
// GET /api/v1/orders/by-number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), platformID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a filtered page of orders.
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var filter ordersapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), platformID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// StatusCounts returns order counts per status for dashboard tabs.
// GET /api/v1/orders/status-counts
func (h *OrderHandler) StatusCounts(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	counts, err := h.orderService.StatusCounts(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

// Update edits customer details, discount or notes on a pending order.
// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ordersapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), platformID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AddItem adds a line to a pending order.
// POST /api/v1/orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ordersapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), platformID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem removes a line from a pending order.
// DELETE /api/v1/orders/:id/items/:itemId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), platformID, orderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateItemQuantity changes a base-price line's quantity.
// PUT /api/v1/orders/:id/items/:itemId/quantity
func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req ordersapp.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateItemQuantity(c.Request.Context(), platformID, orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeItemProduct swaps a line to a different product.
// PUT /api/v1/orders/:id/items/:itemId/product
func (h *OrderHandler) ChangeItemProduct(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req ordersapp.ChangeItemProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.ChangeItemProduct(c.Request.Context(), platformID, orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Transition moves an order to a new status.
// POST /api/v1/orders/:id/transition
func (h *OrderHandler) Transition(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ordersapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), platformID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// BulkTransition moves several orders at once, reporting per-order failures.
// POST /api/v1/orders/bulk-transition
func (h *OrderHandler) BulkTransition(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req ordersapp.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.BulkTransition(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a pending order.
// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), platformID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
