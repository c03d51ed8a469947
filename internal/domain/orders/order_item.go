package orders

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
)

// IDList is a set of entity IDs persisted as a jsonb array. Used for
// multi-select variant choices on an order item.
type IDList []uuid.UUID

// Value implements driver.Valuer for jsonb storage
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for jsonb storage
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether the list contains the given ID
func (l IDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// VariantSelections holds the customer's variant choices per dimension
type VariantSelections struct {
	ColorIDs IDList `gorm:"type:jsonb" json:"color_ids"`
	ShapeIDs IDList `gorm:"type:jsonb" json:"shape_ids"`
	SizeIDs  IDList `gorm:"type:jsonb" json:"size_ids"`
}

// IsEmpty reports whether no variant was selected on any dimension
func (v VariantSelections) IsEmpty() bool {
	return len(v.ColorIDs) == 0 && len(v.ShapeIDs) == 0 && len(v.SizeIDs) == 0
}

// Validate rejects the same variant selected more than once on a dimension
func (v VariantSelections) Validate() error {
	for _, list := range []IDList{v.ColorIDs, v.ShapeIDs, v.SizeIDs} {
		for i, id := range list {
			if list[:i].Contains(id) {
				return shared.NewDomainError("DUPLICATE_VARIANT", "The same variant cannot be selected twice")
			}
		}
	}
	return nil
}

// All returns every selected variant ID across dimensions
func (v VariantSelections) All() []uuid.UUID {
	all := make([]uuid.UUID, 0, len(v.ColorIDs)+len(v.ShapeIDs)+len(v.SizeIDs))
	all = append(all, v.ColorIDs...)
	all = append(all, v.ShapeIDs...)
	all = append(all, v.SizeIDs...)
	return all
}

// OrderItem is a line item in an order. Pricing is resolved server-side
// against the catalog at creation time: when an offer was selected the item
// carries the structured offer (quantity, price, label) and the line total
// is the offer's bundle price; otherwise total = quantity * unit price.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName string            `gorm:"type:varchar(200);not null"`
	Quantity    int               `gorm:"not null"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	OfferLabel  string            `gorm:"type:varchar(100)"` // Empty when priced from the base price
	OfferQty    int               `gorm:"not null;default:0"`
	OfferPrice  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Selections  VariantSelections `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a line item from a server-resolved price
func NewOrderItem(orderID, productID uuid.UUID, productName string, resolved catalog.ResolvedPrice, selections VariantSelections) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if resolved.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if resolved.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    resolved.Quantity,
		UnitPrice:   resolved.UnitPrice,
		Total:       resolved.LineTotal(),
		Selections:  selections,
	}
	if resolved.Offer != nil {
		item.OfferLabel = resolved.Offer.Label
		item.OfferQty = resolved.Offer.Quantity
		item.OfferPrice = resolved.Offer.Price
	}

	return item, nil
}

// HasOffer reports whether the item was priced from an offer
func (i *OrderItem) HasOffer() bool {
	return i.OfferLabel != ""
}

// UpdateQuantity updates the quantity and recalculates the total.
// Not allowed on offer-priced items; the offer fixes quantity and price.
func (i *OrderItem) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.HasOffer() {
		return shared.NewDomainError("OFFER_FIXED_QUANTITY", "Quantity is fixed by the selected offer; change the offer instead")
	}

	i.Quantity = quantity
	i.Total = i.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	i.UpdatedAt = time.Now()

	return nil
}

// Reprice replaces the item's product and pricing from a fresh resolution.
// Variant selections are preserved on purpose: switching a product keeps the
// customer's picks while offer and quantity reset to the resolved defaults.
func (i *OrderItem) Reprice(productID uuid.UUID, productName string, resolved catalog.ResolvedPrice) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if resolved.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.ProductID = productID
	i.ProductName = productName
	i.Quantity = resolved.Quantity
	i.UnitPrice = resolved.UnitPrice
	i.Total = resolved.LineTotal()
	i.OfferLabel = ""
	i.OfferQty = 0
	i.OfferPrice = decimal.Zero
	if resolved.Offer != nil {
		i.OfferLabel = resolved.Offer.Label
		i.OfferQty = resolved.Offer.Quantity
		i.OfferPrice = resolved.Offer.Price
	}
	i.UpdatedAt = time.Now()

	return nil
}

// OfferDisplay renders the selected offer for display, e.g. "2 قطعة - 40000".
// Presentation only; the structured triple is what gets persisted.
func (i *OrderItem) OfferDisplay() string {
	if !i.HasOffer() {
		return ""
	}
	return fmt.Sprintf("%d قطعة - %s", i.OfferQty, i.OfferPrice.String())
}
