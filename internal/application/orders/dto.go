package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tajer/backend/internal/domain/orders"
)

// CustomerInput carries the customer details on an order request
type CustomerInput struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Phone       string `json:"phone" binding:"required,min=7,max=30"`
	Address     string `json:"address" binding:"max=500"`
	Governorate string `json:"governorate" binding:"required,governorate"`
}

// OrderItemInput is one line in a create order request. When OfferLabel is
// set the quantity is dictated by the offer and Quantity is ignored.
type OrderItemInput struct {
	ProductID  uuid.UUID   `json:"product_id" binding:"required"`
	Quantity   int         `json:"quantity" binding:"min=0"`
	OfferLabel string      `json:"offer_label"`
	ColorIDs   []uuid.UUID `json:"color_ids"`
	ShapeIDs   []uuid.UUID `json:"shape_ids"`
	SizeIDs    []uuid.UUID `json:"size_ids"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	Customer       CustomerInput    `json:"customer" binding:"required"`
	Items          []OrderItemInput `json:"items" binding:"required,min=1"`
	Source         string           `json:"source"`
	Discount       *decimal.Decimal `json:"discount"`
	Notes          string           `json:"notes"`
	IdempotencyKey string           `json:"-"`
}

// UpdateOrderRequest changes the mutable head fields of a pending order
type UpdateOrderRequest struct {
	Customer *CustomerInput   `json:"customer"`
	Discount *decimal.Decimal `json:"discount"`
	Notes    *string          `json:"notes"`
}

// AddItemRequest adds a line item to a pending order
type AddItemRequest struct {
	Item OrderItemInput `json:"item" binding:"required"`
}

// UpdateItemQuantityRequest changes a base-priced line's quantity
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ChangeItemProductRequest swaps the product behind a line item
type ChangeItemProductRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	OfferLabel string    `json:"offer_label"`
}

// TransitionRequest moves an order to a new status. Reason is required for
// cancellations.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// BulkTransitionRequest moves several orders to the same status
type BulkTransitionRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	Status   string      `json:"status" binding:"required"`
	Reason   string      `json:"reason" binding:"max=500"`
}

// BulkTransitionResult reports per-order outcomes of a bulk transition
type BulkTransitionResult struct {
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// ListFilter narrows order listings
type ListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	Search      string `form:"search"`
	Status      string `form:"status"`
	Source      string `form:"source"`
	Governorate string `form:"governorate"`
	From        string `form:"from"`
	To          string `form:"to"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
}

// OrderItemResponse is one line item in API responses
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	OfferLabel   string          `json:"offer_label,omitempty"`
	OfferDisplay string          `json:"offer_display,omitempty"`
	ColorIDs     []uuid.UUID     `json:"color_ids,omitempty"`
	ShapeIDs     []uuid.UUID     `json:"shape_ids,omitempty"`
	SizeIDs      []uuid.UUID     `json:"size_ids,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerName   string              `json:"customer_name"`
	CustomerPhone  string              `json:"customer_phone"`
	CustomerAddr   string              `json:"customer_address,omitempty"`
	Governorate    string              `json:"governorate"`
	GovernorateAr  string              `json:"governorate_ar"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	DeliveryFee    decimal.Decimal     `json:"delivery_fee"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Status         string              `json:"status"`
	StatusLabel    string              `json:"status_label"`
	Source         string              `json:"source"`
	Notes          string              `json:"notes,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	ConfirmedAt    *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt      *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	RefundedAt     *time.Time          `json:"refunded_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// StatusCountsResponse reports order counts per status
type StatusCountsResponse map[string]int64

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = toItemResponse(&o.Items[i])
	}

	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.Customer.Name,
		CustomerPhone:  o.Customer.Phone,
		CustomerAddr:   o.Customer.Address,
		Governorate:    o.Customer.Governorate.String(),
		GovernorateAr:  o.Customer.Governorate.ArabicName(),
		Items:          items,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		DeliveryFee:    o.DeliveryFee,
		TotalAmount:    o.TotalAmount,
		Status:         o.Status.String(),
		StatusLabel:    o.Status.Label(),
		Source:         o.Source.String(),
		Notes:          o.Notes,
		CancelReason:   o.CancelReason,
		ConfirmedAt:    o.ConfirmedAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		RefundedAt:     o.RefundedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toItemResponse(item *orders.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:           item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		Total:        item.Total,
		OfferLabel:   item.OfferLabel,
		OfferDisplay: item.OfferDisplay(),
		ColorIDs:     item.Selections.ColorIDs,
		ShapeIDs:     item.Selections.ShapeIDs,
		SizeIDs:      item.Selections.SizeIDs,
	}
}

func toSelections(input OrderItemInput) orders.VariantSelections {
	return orders.VariantSelections{
		ColorIDs: input.ColorIDs,
		ShapeIDs: input.ShapeIDs,
		SizeIDs:  input.SizeIDs,
	}
}
