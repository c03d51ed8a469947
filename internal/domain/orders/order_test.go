package orders

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

func testCustomer() Customer {
	return Customer{
		Name:        "أحمد علي",
		Phone:       "07701234567",
		Address:     "حي المنصور، شارع 14",
		Governorate: valueobject.GovernorateBaghdad,
	}
}

func basePrice(amount int64) catalog.ResolvedPrice {
	return catalog.ResolvedPrice{UnitPrice: decimal.NewFromInt(amount), Quantity: 1}
}

func offerPrice(label string, qty int, bundle int64) catalog.ResolvedPrice {
	return catalog.ResolvedPrice{
		UnitPrice: decimal.NewFromInt(bundle),
		Quantity:  qty,
		Offer:     &catalog.PriceOffer{Quantity: qty, Price: decimal.NewFromInt(bundle), Label: label},
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), "ORD-0001", testCustomer(), SourceManual)
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, StatusPending, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Empty(t, order.Items)
	})

	t.Run("fails with invalid governorate", func(t *testing.T) {
		customer := testCustomer()
		customer.Governorate = "atlantis"

		_, err := NewOrder(uuid.New(), "ORD-0001", customer, SourceManual)
		assert.Error(t, err)
	})

	t.Run("fails with empty customer name", func(t *testing.T) {
		customer := testCustomer()
		customer.Name = " "

		_, err := NewOrder(uuid.New(), "ORD-0001", customer, SourceManual)
		assert.Error(t, err)
	})

	t.Run("fails with unknown source", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "ORD-0001", testCustomer(), Source("carrier_pigeon"))
		assert.Error(t, err)
	})
}

func TestOrderTotals(t *testing.T) {
	t.Run("sums base and offer items", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "قميص", offerPrice("عرض 2", 2, 40000), VariantSelections{})
		require.NoError(t, err)

		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(65000)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(65000)))
	})

	t.Run("discount larger than subtotal clamps total at delivery fee", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(50000), VariantSelections{})
		require.NoError(t, err)
		require.NoError(t, order.ApplyDiscount(decimal.NewFromInt(70000)))
		require.NoError(t, order.SetDeliveryFee(decimal.NewFromInt(5000)))

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(5000)),
			"total should clamp merchandise to zero and keep the delivery fee, got %s", order.TotalAmount)
	})

	t.Run("delivery fee added after discount", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(30000), VariantSelections{})
		require.NoError(t, err)
		require.NoError(t, order.ApplyDiscount(decimal.NewFromInt(10000)))
		require.NoError(t, order.SetDeliveryFee(decimal.NewFromInt(4000)))

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(24000)))
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.ApplyDiscount(decimal.NewFromInt(-1)))
	})
}

func TestOrderItems(t *testing.T) {
	t.Run("removal by ID keeps the other lines", func(t *testing.T) {
		order := newTestOrder(t)

		first, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)
		second, err := order.AddItem(uuid.New(), "قميص", basePrice(15000), VariantSelections{})
		require.NoError(t, err)

		require.NoError(t, order.RemoveItem(first.ID))

		require.Len(t, order.Items, 1)
		assert.Equal(t, second.ID, order.Items[0].ID)
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("removing unknown item fails", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.RemoveItem(uuid.New()))
	})

	t.Run("quantity update recalculates totals", func(t *testing.T) {
		order := newTestOrder(t)

		item, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)
		require.NoError(t, order.UpdateItemQuantity(item.ID, 3))

		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(75000)))
	})

	t.Run("quantity is fixed on offer items", func(t *testing.T) {
		order := newTestOrder(t)

		item, err := order.AddItem(uuid.New(), "قميص", offerPrice("عرض 2", 2, 40000), VariantSelections{})
		require.NoError(t, err)

		assert.Error(t, order.UpdateItemQuantity(item.ID, 5))
	})

	t.Run("changing the product resets offer but keeps selections", func(t *testing.T) {
		order := newTestOrder(t)
		selections := VariantSelections{ColorIDs: IDList{uuid.New()}}

		item, err := order.AddItem(uuid.New(), "قميص", offerPrice("عرض 2", 2, 40000), selections)
		require.NoError(t, err)

		newProduct := uuid.New()
		require.NoError(t, order.ChangeItemProduct(item.ID, newProduct, "حذاء", basePrice(25000)))

		got := order.GetItem(item.ID)
		require.NotNil(t, got)
		assert.Equal(t, newProduct, got.ProductID)
		assert.False(t, got.HasOffer())
		assert.Equal(t, 1, got.Quantity)
		assert.Equal(t, selections.ColorIDs, got.Selections.ColorIDs)
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("items frozen outside pending", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)
		require.NoError(t, order.TransitionTo(StatusConfirmed, ""))

		_, err = order.AddItem(uuid.New(), "قميص", basePrice(15000), VariantSelections{})
		assert.Error(t, err)
	})
}

func TestVariantSelectionsValidate(t *testing.T) {
	t.Run("distinct selections pass", func(t *testing.T) {
		selections := VariantSelections{
			ColorIDs: IDList{uuid.New(), uuid.New()},
			SizeIDs:  IDList{uuid.New()},
		}
		assert.NoError(t, selections.Validate())
	})

	t.Run("same variant twice on a dimension rejected", func(t *testing.T) {
		id := uuid.New()
		selections := VariantSelections{ColorIDs: IDList{id, id}}

		err := selections.Validate()

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "DUPLICATE_VARIANT", domainErr.Code)
	})

	t.Run("same id on different dimensions allowed", func(t *testing.T) {
		id := uuid.New()
		selections := VariantSelections{ColorIDs: IDList{id}, SizeIDs: IDList{id}}
		assert.NoError(t, selections.Validate())
	})
}

func TestOrderSubmit(t *testing.T) {
	t.Run("submit requires at least one item", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Submit())
	})

	t.Run("submit emits created event", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)

		require.NoError(t, order.Submit())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})
}

func TestOrderTransitions(t *testing.T) {
	t.Run("happy path stamps timestamps", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "حذاء", basePrice(25000), VariantSelections{})
		require.NoError(t, err)

		require.NoError(t, order.TransitionTo(StatusConfirmed, ""))
		require.NoError(t, order.TransitionTo(StatusProcessing, ""))
		require.NoError(t, order.TransitionTo(StatusShipped, ""))
		require.NoError(t, order.TransitionTo(StatusDelivered, ""))

		assert.NotNil(t, order.ConfirmedAt)
		assert.NotNil(t, order.ShippedAt)
		assert.NotNil(t, order.DeliveredAt)
	})

	t.Run("illegal jump is rejected", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.TransitionTo(StatusDelivered, "")

		assert.Error(t, err)
		assert.Equal(t, StatusPending, order.Status)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.TransitionTo(StatusCancelled, ""))

		require.NoError(t, order.TransitionTo(StatusCancelled, "العميل رفض الاستلام"))
		assert.Equal(t, "العميل رفض الاستلام", order.CancelReason)
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("delivered emits delivered event type", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.TransitionTo(StatusConfirmed, ""))
		require.NoError(t, order.TransitionTo(StatusProcessing, ""))
		require.NoError(t, order.TransitionTo(StatusShipped, ""))
		order.ClearDomainEvents()

		require.NoError(t, order.TransitionTo(StatusDelivered, ""))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderDelivered, events[0].EventType())
	})
}
