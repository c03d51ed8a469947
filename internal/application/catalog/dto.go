package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tajer/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name              string              `json:"name" binding:"required,min=1,max=200"`
	Description       string              `json:"description"`
	CategoryID        *uuid.UUID          `json:"category_id"`
	Price             decimal.Decimal     `json:"price" binding:"required"`
	Cost              decimal.Decimal     `json:"cost"`
	Stock             int                 `json:"stock"`
	LowStockThreshold int                 `json:"low_stock_threshold"`
	Offers            []PriceOfferInput   `json:"offers"`
	Variants          []CreateVariantItem `json:"variants"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
}

// PriceOfferInput is one structured quantity offer
type PriceOfferInput struct {
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Label     string          `json:"label" binding:"required,min=1,max=100"`
	IsDefault bool            `json:"is_default"`
}

// SetOffersRequest replaces a product's price offers
type SetOffersRequest struct {
	Offers []PriceOfferInput `json:"offers"`
}

// SetStockRequest sets the recorded stock level
type SetStockRequest struct {
	Stock             int  `json:"stock"`
	LowStockThreshold *int `json:"low_stock_threshold"`
}

// CreateVariantItem is one variant option in a create/replace request
type CreateVariantItem struct {
	Kind      string `json:"kind" binding:"required,oneof=color shape size"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	ImageKey  string `json:"image_key"`
	SortOrder int    `json:"sort_order"`
}

// ReplaceVariantsRequest replaces all variants of one kind
type ReplaceVariantsRequest struct {
	Kind     string              `json:"kind" binding:"required,oneof=color shape size"`
	Variants []CreateVariantItem `json:"variants"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder *int   `json:"sort_order"`
}

// PriceOfferResponse is one offer in API responses
type PriceOfferResponse struct {
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Label     string          `json:"label"`
	IsDefault bool            `json:"is_default"`
}

// VariantResponse is one variant option in API responses
type VariantResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	ImageKey  string    `json:"image_key,omitempty"`
	SortOrder int       `json:"sort_order"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Description       string               `json:"description,omitempty"`
	CategoryID        *uuid.UUID           `json:"category_id,omitempty"`
	Price             decimal.Decimal      `json:"price"`
	Cost              decimal.Decimal      `json:"cost"`
	Offers            []PriceOfferResponse `json:"offers"`
	Stock             int                  `json:"stock"`
	LowStockThreshold int                  `json:"low_stock_threshold"`
	IsLowStock        bool                 `json:"is_low_stock"`
	ImageKey          string               `json:"image_key,omitempty"`
	Status            string               `json:"status"`
	Variants          []VariantResponse    `json:"variants"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// PublicProductResponse is the storefront view of a product: no cost, no
// stock figures beyond availability
type PublicProductResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Price        decimal.Decimal      `json:"price"`
	Offers       []PriceOfferResponse `json:"offers"`
	DefaultOffer *PriceOfferResponse  `json:"default_offer,omitempty"`
	InStock      bool                 `json:"in_stock"`
	ImageKey     string               `json:"image_key,omitempty"`
	Variants     []VariantResponse    `json:"variants"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProductResponse converts a product aggregate to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		Price:             p.Price,
		Cost:              p.Cost,
		Offers:            toOfferResponses(p.PriceOffers),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		ImageKey:          p.ImageKey,
		Status:            string(p.Status),
		Variants:          toVariantResponses(p.Variants),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToPublicProductResponse converts a product to its storefront representation
func ToPublicProductResponse(p *catalog.Product) PublicProductResponse {
	return PublicProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Offers:       toOfferResponses(p.PriceOffers),
		DefaultOffer: defaultOfferResponse(p.PriceOffers),
		InStock:      p.Stock > 0,
		ImageKey:     p.ImageKey,
		Variants:     toVariantResponses(p.Variants),
	}
}

// defaultOfferResponse surfaces the offer the storefront pre-selects
func defaultOfferResponse(offers catalog.PriceOffers) *PriceOfferResponse {
	offer, ok := offers.Default()
	if !ok {
		return nil
	}
	return &PriceOfferResponse{
		Quantity:  offer.Quantity,
		Price:     offer.Price,
		Label:     offer.Label,
		IsDefault: true,
	}
}

// ToCategoryResponse converts a category to its API representation
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
	}
}

func toOfferResponses(offers catalog.PriceOffers) []PriceOfferResponse {
	responses := make([]PriceOfferResponse, len(offers))
	for i, offer := range offers {
		responses[i] = PriceOfferResponse{
			Quantity:  offer.Quantity,
			Price:     offer.Price,
			Label:     offer.Label,
			IsDefault: offer.IsDefault,
		}
	}
	return responses
}

func toVariantResponses(variants []catalog.ProductVariant) []VariantResponse {
	responses := make([]VariantResponse, len(variants))
	for i, v := range variants {
		responses[i] = VariantResponse{
			ID:        v.ID,
			Kind:      string(v.Kind),
			Name:      v.Name,
			ImageKey:  v.ImageKey,
			SortOrder: v.SortOrder,
		}
	}
	return responses
}

func toDomainOffers(inputs []PriceOfferInput) catalog.PriceOffers {
	offers := make(catalog.PriceOffers, len(inputs))
	for i, input := range inputs {
		offers[i] = catalog.PriceOffer{
			Quantity:  input.Quantity,
			Price:     input.Price,
			Label:     input.Label,
			IsDefault: input.IsDefault,
		}
	}
	return offers
}
