package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	deliveryapp "github.com/tajer/backend/internal/application/delivery"
	identityapp "github.com/tajer/backend/internal/application/identity"
)

// DeliveryHandler handles delivery fee configuration endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
	platformService *identityapp.PlatformService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *deliveryapp.DeliveryService, platformService *identityapp.PlatformService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		platformService: platformService,
	}
}

// Get returns the platform's delivery settings.
// GET /api/v1/delivery
func (h *DeliveryHandler) Get(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	setting, err := h.deliveryService.Get(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// Update changes the default fee, free threshold and enabled flag.
// PUT /api/v1/delivery
func (h *DeliveryHandler) Update(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req deliveryapp.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.deliveryService.Update(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// SetGovernorateFee sets or replaces one governorate's fee override.
// PUT /api/v1/delivery/fees
func (h *DeliveryHandler) SetGovernorateFee(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req deliveryapp.SetGovernorateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.deliveryService.SetGovernorateFee(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// RemoveGovernorateFee drops an override, reverting to the default fee.
// DELETE /api/v1/delivery/fees/:governorate
func (h *DeliveryHandler) RemoveGovernorateFee(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	setting, err := h.deliveryService.RemoveGovernorateFee(c.Request.Context(), platformID, c.Param("governorate"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// Quote returns the delivery fee for a governorate and net total. Public,
// used by storefronts before order submission.
// GET /api/v1/public/:subdomain/delivery-quote
func (h *DeliveryHandler) Quote(c *gin.Context) {
	platform, err := h.platformService.GetBySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	netTotal := decimal.Zero
	if raw := c.Query("net_total"); raw != "" {
		netTotal, err = decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "Invalid net_total value")
			return
		}
	}

	quote, err := h.deliveryService.Quote(c.Request.Context(), platform.ID, c.Query("governorate"), netTotal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}
