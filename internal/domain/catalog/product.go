package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a sellable product in a platform's catalog.
// It is the aggregate root for catalog operations; variant dimensions
// (colors, shapes, sizes) are child entities.
type Product struct {
	shared.PlatformAggregateRoot
	Name              string           `gorm:"type:varchar(200);not null"`
	Description       string           `gorm:"type:text"`
	CategoryID        *uuid.UUID       `gorm:"type:uuid;index"`
	Price             decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"` // Base selling price
	Cost              decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"` // Purchase cost
	PriceOffers       PriceOffers      `gorm:"type:jsonb"`
	Stock             int              `gorm:"not null;default:0"`
	LowStockThreshold int              `gorm:"not null;default:0"`
	ImageKey          string           `gorm:"type:varchar(500)"`
	Status            ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Variants          []ProductVariant `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(platformID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	product := &Product{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		Name:                  strings.TrimSpace(name),
		Price:                 price,
		Cost:                  decimal.Zero,
		Status:                ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPricing updates the selling price and cost
func (p *Product) SetPricing(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Product cost cannot be negative")
	}

	p.Price = price
	p.Cost = cost
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetOffers replaces the product's price offers
func (p *Product) SetOffers(offers PriceOffers) error {
	if err := offers.Validate(); err != nil {
		return shared.NewDomainError("INVALID_OFFERS", err.Error())
	}

	p.PriceOffers = offers
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock overrides the manual stock counter.
// The inventory summary's computed remaining quantity is not reconciled
// with this value; they can diverge.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	wasAbove := p.Stock > p.LowStockThreshold
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if wasAbove && p.IsLowStock() {
		p.AddDomainEvent(NewStockBelowThresholdEvent(p))
	}

	return nil
}

// SetLowStockThreshold updates the low stock alert threshold
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory assigns the product to a category (nil clears it)
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate activates the product
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate deactivates the product, hiding it from order entry
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock returns true if stock is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold
}

// VariantsOfKind returns the product's variants of the given kind
func (p *Product) VariantsOfKind(kind VariantKind) []ProductVariant {
	var result []ProductVariant
	for _, v := range p.Variants {
		if v.Kind == kind {
			result = append(result, v)
		}
	}
	return result
}

// HasVariant reports whether the product carries a variant with the given ID
func (p *Product) HasVariant(variantID uuid.UUID) bool {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return true
		}
	}
	return false
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
