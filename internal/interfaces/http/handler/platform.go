package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/tajer/backend/internal/application/identity"
	"github.com/tajer/backend/internal/domain/shared"
)

// PlatformHandler handles platform settings endpoints
type PlatformHandler struct {
	BaseHandler
	platformService *identityapp.PlatformService
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(platformService *identityapp.PlatformService) *PlatformHandler {
	return &PlatformHandler{platformService: platformService}
}

// Get returns the authenticated user's platform.
// GET /api/v1/platform
func (h *PlatformHandler) Get(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	platform, err := h.platformService.Get(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}

// Update changes the platform's profile.
// PUT /api/v1/platform
func (h *PlatformHandler) Update(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req identityapp.UpdatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	platform, err := h.platformService.Update(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}

// GetBySubdomain resolves a storefront platform by subdomain. Public.
// GET /api/v1/public/:subdomain/platform
func (h *PlatformHandler) GetBySubdomain(c *gin.Context) {
	platform, err := h.platformService.GetBySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}

// List returns all platforms. Operator-only.
// GET /api/v1/admin/platforms
func (h *PlatformHandler) List(c *gin.Context) {
	filter := shared.DefaultFilter()
	filter.Search = c.Query("search")
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	platforms, total, err := h.platformService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, platforms, total, filter.Page, filter.PageSize)
}

// Suspend takes a platform offline. Operator-only.
// POST /api/v1/admin/platforms/:id/suspend
func (h *PlatformHandler) Suspend(c *gin.Context) {
	platformID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid platform ID")
		return
	}

	var req identityapp.SuspendPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	platform, err := h.platformService.Suspend(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}

// Reactivate brings a suspended or expired platform back. Operator-only.
// POST /api/v1/admin/platforms/:id/reactivate
func (h *PlatformHandler) Reactivate(c *gin.Context) {
	platformID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid platform ID")
		return
	}

	platform, err := h.platformService.Reactivate(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}

// ExtendSubscription moves the subscription end date. Operator-only.
// POST /api/v1/admin/platforms/:id/extend-subscription
func (h *PlatformHandler) ExtendSubscription(c *gin.Context) {
	platformID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid platform ID")
		return
	}

	var req identityapp.ExtendSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	platform, err := h.platformService.ExtendSubscription(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, platform)
}
