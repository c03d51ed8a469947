package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// Customer holds the denormalized customer fields on an order. Orders keep
// a snapshot of the customer at submission time; there is no customer
// aggregate to reference.
type Customer struct {
	Name        string                  `gorm:"column:customer_name;type:varchar(200);not null"`
	Phone       string                  `gorm:"column:customer_phone;type:varchar(30);not null"`
	Address     string                  `gorm:"column:customer_address;type:varchar(500)"`
	Governorate valueobject.Governorate `gorm:"column:governorate;type:varchar(30);not null"`
}

// Validate checks the customer snapshot
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone cannot be empty")
	}
	if !c.Governorate.IsValid() {
		return shared.NewDomainError("INVALID_GOVERNORATE", fmt.Sprintf("Unknown governorate %q", c.Governorate))
	}
	return nil
}

// Order is the aggregate root for customer orders. It owns its line items
// and is the single place the total formula lives:
//
//	total = max(0, subtotal - discount) + delivery fee
type Order struct {
	shared.PlatformAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_platform_number,priority:2"`
	Customer       Customer        `gorm:"embedded"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Source         Source          `gorm:"type:varchar(20);not null;default:'manual';index"`
	IdempotencyKey string          `gorm:"type:varchar(100);uniqueIndex:idx_order_platform_idem,priority:2,where:idempotency_key <> ''"`
	Notes          string          `gorm:"type:text"`
	ConfirmedAt    *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
	CancelReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status
func NewOrder(platformID uuid.UUID, orderNumber string, customer Customer, source Source) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", fmt.Sprintf("Unknown order source %q", source))
	}

	return &Order{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		OrderNumber:           orderNumber,
		Customer:              customer,
		Items:                 make([]OrderItem, 0),
		Subtotal:              decimal.Zero,
		DiscountAmount:        decimal.Zero,
		DeliveryFee:           decimal.Zero,
		TotalAmount:           decimal.Zero,
		Status:                StatusPending,
		Source:                source,
	}, nil
}

// SetIdempotencyKey attaches the client-generated submission key
func (o *Order) SetIdempotencyKey(key string) {
	o.IdempotencyKey = key
}

// CanModify returns true if items and amounts can still change
func (o *Order) CanModify() bool {
	return o.Status == StatusPending
}

// AddItem appends a line item priced from a server-side resolution
func (o *Order) AddItem(productID uuid.UUID, productName string, resolved catalog.ResolvedPrice, selections VariantSelections) (*OrderItem, error) {
	if !o.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewOrderItem(o.ID, productID, productName, resolved, selections)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line item by its ID. Removal is by identity, not by
// position, so a concurrent reorder of the list cannot drop the wrong line.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-pending order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItemQuantity updates the quantity of a base-priced line item
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-pending order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ChangeItemProduct swaps a line item to a different product. Offer and
// quantity reset to the fresh resolution; variant selections persist.
func (o *Order) ChangeItemProduct(itemID, productID uuid.UUID, productName string, resolved catalog.ResolvedPrice) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-pending order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].Reprice(productID, productName, resolved); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ApplyDiscount applies an order-level discount. A discount larger than the
// subtotal is allowed; the total clamps at zero rather than going negative.
func (o *Order) ApplyDiscount(discount decimal.Decimal) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-pending order")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	o.DiscountAmount = discount
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// SetDeliveryFee sets the resolved delivery fee for the customer's governorate
func (o *Order) SetDeliveryFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_FEE", "Delivery fee cannot be negative")
	}

	o.DeliveryFee = fee
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// UpdateCustomer replaces the customer details on a pending order
func (o *Order) UpdateCustomer(customer Customer) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change customer on a non-pending order")
	}
	if err := customer.Validate(); err != nil {
		return err
	}

	o.Customer = customer
	o.UpdatedAt = time.Now()

	return nil
}

// SetNotes sets free-form notes on the order
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// Validate checks the order is submittable: at least one line item, each
// referencing a product with a positive quantity
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	for _, item := range o.Items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Order item is missing a product")
		}
		if item.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
		}
	}
	return nil
}

// Submit finalizes a freshly composed order and emits the created event
func (o *Order) Submit() error {
	if err := o.Validate(); err != nil {
		return err
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return nil
}

// TransitionTo moves the order to a new status through the transition table.
// The reason is required for cancellations, optional otherwise.
func (o *Order) TransitionTo(target Status, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	if target == StatusCancelled && reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	from := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
		o.CancelReason = reason
	case StatusRefunded:
		o.RefundedAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// recalculateTotals recalculates subtotal and total from the line items.
// A discount larger than the subtotal clamps to zero rather than going
// negative; the delivery fee is added after the clamp.
func (o *Order) recalculateTotals() {
	subtotal := valueobject.ZeroIQD()
	for _, item := range o.Items {
		subtotal = subtotal.MustAdd(valueobject.NewMoneyIQD(item.Total))
	}
	o.Subtotal = subtotal.Amount()

	net := subtotal.MustAdd(valueobject.NewMoneyIQD(o.DiscountAmount).Negate()).ClampNonNegative()
	o.TotalAmount = net.MustAdd(valueobject.NewMoneyIQD(o.DeliveryFee)).Amount()
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetItem returns a line item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
