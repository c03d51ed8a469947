package catalog

import (
	"github.com/tajer/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductDeleted      = "catalog.product.deleted"
	EventTypeStockBelowThreshold = "catalog.product.stock_below_threshold"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Price string `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID, p.PlatformID),
		Name:            p.Name,
		Price:           p.Price.String(),
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, "Product", p.ID, p.PlatformID),
		Name:            p.Name,
	}
}

// StockBelowThresholdEvent is published when a stock update drops a product
// to or below its low-stock threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(p *Product) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Product", p.ID, p.PlatformID),
		Name:            p.Name,
		Stock:           p.Stock,
		Threshold:       p.LowStockThreshold,
	}
}
