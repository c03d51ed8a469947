package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/tajer/backend/internal/application/catalog"
	identityapp "github.com/tajer/backend/internal/application/identity"
	"github.com/tajer/backend/internal/domain/shared"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	platformService *identityapp.PlatformService
}

// NewProductHandler creates a new ProductHandler. The platform service
// resolves storefront subdomains on public routes.
func NewProductHandler(productService *catalogapp.ProductService, platformService *identityapp.PlatformService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		platformService: platformService,
	}
}

// Create adds a product with its offers and variants.
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get returns one product.
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
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

	product, err := h.productService.Get(c.Request.Context(), platformID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns a filtered page of products.
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	filter := productFilterFromQuery(c)
	products, total, err := h.productService.List(c.Request.Context(), platformID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Update changes product details.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
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

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), platformID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetOffers replaces a product's bundle price offers.
// PUT /api/v1/products/:id/offers
func (h *ProductHandler) SetOffers(c *gin.Context) {
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

	var req catalogapp.SetOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.SetOffers(c.Request.Context(), platformID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetStock sets absolute stock and optionally the low-stock threshold.
// PUT /api/v1/products/:id/stock
func (h *ProductHandler) SetStock(c *gin.Context) {
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

	var req catalogapp.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.SetStock(c.Request.Context(), platformID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ReplaceVariants rebuilds one variant kind (color, shape or size).
// PUT /api/v1/products/:id/variants
func (h *ProductHandler) ReplaceVariants(c *gin.Context) {
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

	var req catalogapp.ReplaceVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.ReplaceVariants(c.Request.Context(), platformID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Activate makes a product orderable.
// POST /api/v1/products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	h.setStatus(c, true)
}

// Deactivate hides a product from ordering.
// POST /api/v1/products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *ProductHandler) setStatus(c *gin.Context, active bool) {
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

	var product *catalogapp.ProductResponse
	if active {
		product, err = h.productService.Activate(c.Request.Context(), platformID, productID)
	} else {
		product, err = h.productService.Deactivate(c.Request.Context(), platformID, productID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product.
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
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

	if err := h.productService.Delete(c.Request.Context(), platformID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// LowStock lists active products at or below their threshold.
// GET /api/v1/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	products, err := h.productService.LowStock(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// ListPublic lists active products for a storefront. Public.
// GET /api/v1/public/:subdomain/products
func (h *ProductHandler) ListPublic(c *gin.Context) {
	platform, err := h.platformService.GetBySubdomain(c.Request.Context(), c.Param("subdomain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := productFilterFromQuery(c)
	products, total, err := h.productService.ListPublic(c.Request.Context(), platform.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

func productFilterFromQuery(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = c.Query("search")
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			filter.Filters["category_id"] = id
		}
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		filter.Filters["min_price"] = minPrice
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		filter.Filters["max_price"] = maxPrice
	}
	if c.Query("in_stock") == "true" {
		filter.Filters["in_stock"] = true
	}
	return filter
}
