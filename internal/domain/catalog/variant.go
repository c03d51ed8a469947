package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tajer/backend/internal/domain/shared"
)

// VariantKind is a variant dimension of a product
type VariantKind string

const (
	VariantKindColor VariantKind = "color"
	VariantKindShape VariantKind = "shape"
	VariantKindSize  VariantKind = "size"
)

// IsValid checks if the kind is a known variant dimension
func (k VariantKind) IsValid() bool {
	switch k {
	case VariantKindColor, VariantKindShape, VariantKindSize:
		return true
	}
	return false
}

// ProductVariant is one selectable option on a variant dimension of a
// product (a color, a shape, or a size). Variants do not affect pricing;
// order items record which ones the customer picked.
type ProductVariant struct {
	shared.BaseEntity
	ProductID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Kind      VariantKind `gorm:"type:varchar(20);not null;index"`
	Name      string      `gorm:"type:varchar(100);not null"`
	ImageKey  string      `gorm:"type:varchar(500)"`
	SortOrder int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant option for a product
func NewProductVariant(productID uuid.UUID, kind VariantKind, name string) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_VARIANT_KIND", "Variant kind must be color, shape or size")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT_NAME", "Variant name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_VARIANT_NAME", "Variant name cannot exceed 100 characters")
	}

	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Kind:       kind,
		Name:       name,
	}, nil
}

// Rename changes the variant's display name
func (v *ProductVariant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_VARIANT_NAME", "Variant name cannot be empty")
	}
	v.Name = name
	v.UpdatedAt = time.Now()
	return nil
}
