package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		platformID := uuid.New()
		product, err := NewProduct(platformID, "حذاء رياضي", decimal.NewFromInt(25000))

		require.NoError(t, err)
		assert.Equal(t, platformID, product.PlatformID)
		assert.Equal(t, "حذاء رياضي", product.Name)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.Cost.IsZero())
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "  ", decimal.NewFromInt(25000))

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, product)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("crossing threshold emits low stock event", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(25000))
		require.NoError(t, err)
		require.NoError(t, product.SetLowStockThreshold(5))
		require.NoError(t, product.SetStock(20))
		product.ClearDomainEvents()

		require.NoError(t, product.SetStock(3))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockBelowThreshold, events[0].EventType())
		assert.True(t, product.IsLowStock())
	})

	t.Run("staying below threshold does not re-emit", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(25000))
		require.NoError(t, err)
		require.NoError(t, product.SetLowStockThreshold(5))
		require.NoError(t, product.SetStock(3))
		product.ClearDomainEvents()

		require.NoError(t, product.SetStock(2))

		assert.Empty(t, product.GetDomainEvents())
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(25000))
		require.NoError(t, err)

		assert.Error(t, product.SetStock(-1))
	})
}

func TestProductVariants(t *testing.T) {
	t.Run("filters variants by kind", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(25000))
		require.NoError(t, err)

		red, err := NewProductVariant(product.ID, VariantKindColor, "أحمر")
		require.NoError(t, err)
		large, err := NewProductVariant(product.ID, VariantKindSize, "كبير")
		require.NoError(t, err)
		product.Variants = []ProductVariant{*red, *large}

		colors := product.VariantsOfKind(VariantKindColor)
		require.Len(t, colors, 1)
		assert.Equal(t, "أحمر", colors[0].Name)

		assert.True(t, product.HasVariant(red.ID))
		assert.False(t, product.HasVariant(uuid.New()))
	})

	t.Run("rejects unknown variant kind", func(t *testing.T) {
		_, err := NewProductVariant(uuid.New(), VariantKind("material"), "قطن")
		assert.Error(t, err)
	})
}

func TestProductLifecycle(t *testing.T) {
	product, err := NewProduct(uuid.New(), "حذاء", decimal.NewFromInt(25000))
	require.NoError(t, err)

	product.Deactivate()
	assert.Equal(t, ProductStatusInactive, product.Status)

	product.Activate()
	assert.Equal(t, ProductStatusActive, product.Status)
}
