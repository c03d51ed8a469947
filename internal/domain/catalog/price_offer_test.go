package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productWithOffers(t *testing.T) *Product {
	t.Helper()

	product, err := NewProduct(uuid.New(), "حذاء رياضي", decimal.NewFromInt(25000))
	require.NoError(t, err)
	require.NoError(t, product.SetPricing(decimal.NewFromInt(25000), decimal.NewFromInt(15000)))

	err = product.SetOffers(PriceOffers{
		{Quantity: 2, Price: decimal.NewFromInt(40000), Label: "عرض 2", IsDefault: false},
		{Quantity: 3, Price: decimal.NewFromInt(55000), Label: "عرض 3", IsDefault: true},
	})
	require.NoError(t, err)

	return product
}

func TestPriceOffersValidate(t *testing.T) {
	t.Run("accepts valid offers", func(t *testing.T) {
		offers := PriceOffers{
			{Quantity: 2, Price: decimal.NewFromInt(40000), Label: "عرض 2"},
			{Quantity: 3, Price: decimal.NewFromInt(55000), Label: "عرض 3"},
		}
		assert.NoError(t, offers.Validate())
	})

	t.Run("rejects duplicate labels", func(t *testing.T) {
		offers := PriceOffers{
			{Quantity: 2, Price: decimal.NewFromInt(40000), Label: "عرض"},
			{Quantity: 3, Price: decimal.NewFromInt(55000), Label: "عرض"},
		}
		assert.Error(t, offers.Validate())
	})

	t.Run("rejects multiple defaults", func(t *testing.T) {
		offers := PriceOffers{
			{Quantity: 2, Price: decimal.NewFromInt(40000), Label: "a", IsDefault: true},
			{Quantity: 3, Price: decimal.NewFromInt(55000), Label: "b", IsDefault: true},
		}
		assert.Error(t, offers.Validate())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		offers := PriceOffers{{Quantity: 0, Price: decimal.NewFromInt(40000), Label: "a"}}
		assert.Error(t, offers.Validate())
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		offers := PriceOffers{{Quantity: 2, Price: decimal.Zero, Label: "a"}}
		assert.Error(t, offers.Validate())
	})
}

func TestResolvePrice(t *testing.T) {
	t.Run("matching label resolves offer bundle price and quantity", func(t *testing.T) {
		product := productWithOffers(t)

		resolved := product.ResolvePrice("عرض 2")

		require.NotNil(t, resolved.Offer)
		assert.Equal(t, 2, resolved.Quantity)
		assert.True(t, resolved.LineTotal().Equal(decimal.NewFromInt(40000)),
			"offer line total should be the bundle price, got %s", resolved.LineTotal())
	})

	t.Run("unknown label falls back to base price", func(t *testing.T) {
		product := productWithOffers(t)

		resolved := product.ResolvePrice("عرض 99")

		assert.Nil(t, resolved.Offer)
		assert.Equal(t, 1, resolved.Quantity)
		assert.True(t, resolved.UnitPrice.Equal(decimal.NewFromInt(25000)))
		assert.True(t, resolved.LineTotal().Equal(decimal.NewFromInt(25000)))
	})

	t.Run("empty label resolves base price", func(t *testing.T) {
		product := productWithOffers(t)

		resolved := product.ResolvePrice("")

		assert.Nil(t, resolved.Offer)
		assert.True(t, resolved.UnitPrice.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("label match is exact, not fuzzy", func(t *testing.T) {
		product := productWithOffers(t)

		resolved := product.ResolvePrice("عرض 2 ")

		assert.Nil(t, resolved.Offer)
	})

	t.Run("base line total scales with quantity", func(t *testing.T) {
		product := productWithOffers(t)

		resolved := product.ResolvePrice("")
		resolved.Quantity = 3

		assert.True(t, resolved.LineTotal().Equal(decimal.NewFromInt(75000)))
	})
}

func TestPriceOffersScan(t *testing.T) {
	t.Run("round-trips through jsonb", func(t *testing.T) {
		offers := PriceOffers{{Quantity: 2, Price: decimal.NewFromInt(40000), Label: "عرض 2"}}

		value, err := offers.Value()
		require.NoError(t, err)

		var decoded PriceOffers
		require.NoError(t, decoded.Scan(value))
		require.Len(t, decoded, 1)
		assert.Equal(t, "عرض 2", decoded[0].Label)
		assert.True(t, decoded[0].Price.Equal(decimal.NewFromInt(40000)))
	})

	t.Run("malformed data degrades to no offers", func(t *testing.T) {
		var decoded PriceOffers
		require.NoError(t, decoded.Scan([]byte(`{"not":"an array"`)))
		assert.Nil(t, decoded)
	})
}
