package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iqd(amount int64) Money {
	return NewMoneyIQD(decimal.NewFromInt(amount))
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add requires same currency", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = iqd(25000).Add(usd)
		assert.Error(t, err)
	})

	t.Run("adds same currency", func(t *testing.T) {
		sum, err := iqd(25000).Add(iqd(15000))
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(40000)))
	})

	t.Run("clamp floors negatives at zero", func(t *testing.T) {
		diff, err := iqd(50000).Subtract(iqd(70000))
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
		assert.True(t, diff.ClampNonNegative().IsZero())
	})

	t.Run("multiply scales the amount", func(t *testing.T) {
		total := iqd(25000).MultiplyByInt(3)
		assert.True(t, total.Amount().Equal(decimal.NewFromInt(75000)))
	})
}

func TestMoneyFormatting(t *testing.T) {
	m := iqd(25000)

	assert.Equal(t, "25000 IQD", m.String())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"25000","currency":"IQD"}`, string(data))
}

func TestMoneyComparison(t *testing.T) {
	assert.True(t, iqd(25000).GreaterThan(iqd(15000)))
	assert.True(t, iqd(15000).LessThan(iqd(25000)))
	assert.True(t, iqd(25000).Equal(iqd(25000)))
	assert.False(t, iqd(25000).Equal(iqd(15000)))
}
