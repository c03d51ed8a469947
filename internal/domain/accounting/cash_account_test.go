package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashAccountApply(t *testing.T) {
	platformID := uuid.New()

	t.Run("deposit raises the balance", func(t *testing.T) {
		account := NewCashAccount(platformID, "")
		tx, err := NewCashTransaction(platformID, account.ID, TransactionDeposit, decimal.NewFromInt(100000), "رأس مال", nil)
		require.NoError(t, err)

		require.NoError(t, account.Apply(tx))

		assert.True(t, account.Balance.Equal(decimal.NewFromInt(100000)))
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("order payment is an inflow", func(t *testing.T) {
		account := NewCashAccount(platformID, "")
		orderID := uuid.New()
		tx, err := NewCashTransaction(platformID, account.ID, TransactionOrderPayment, decimal.NewFromInt(65000), "", &orderID)
		require.NoError(t, err)

		require.NoError(t, account.Apply(tx))
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(65000)))
	})

	t.Run("withdrawal cannot overdraw", func(t *testing.T) {
		account := NewCashAccount(platformID, "")
		deposit, err := NewCashTransaction(platformID, account.ID, TransactionDeposit, decimal.NewFromInt(10000), "", nil)
		require.NoError(t, err)
		require.NoError(t, account.Apply(deposit))

		withdrawal, err := NewCashTransaction(platformID, account.ID, TransactionWithdrawal, decimal.NewFromInt(20000), "", nil)
		require.NoError(t, err)

		err = account.Apply(withdrawal)
		assert.Error(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(10000)), "failed withdrawal must not move the balance")
	})

	t.Run("rejects transaction for another account", func(t *testing.T) {
		account := NewCashAccount(platformID, "")
		tx, err := NewCashTransaction(platformID, uuid.New(), TransactionDeposit, decimal.NewFromInt(1000), "", nil)
		require.NoError(t, err)

		assert.Error(t, account.Apply(tx))
	})
}

func TestNewCashTransaction(t *testing.T) {
	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCashTransaction(uuid.New(), uuid.New(), TransactionDeposit, decimal.Zero, "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewCashTransaction(uuid.New(), uuid.New(), TransactionType("gift"), decimal.NewFromInt(1), "", nil)
		assert.Error(t, err)
	})

	t.Run("signed amount follows direction", func(t *testing.T) {
		inflow, err := NewCashTransaction(uuid.New(), uuid.New(), TransactionDeposit, decimal.NewFromInt(1000), "", nil)
		require.NoError(t, err)
		outflow, err := NewCashTransaction(uuid.New(), uuid.New(), TransactionExpense, decimal.NewFromInt(1000), "", nil)
		require.NoError(t, err)

		assert.True(t, inflow.SignedAmount().IsPositive())
		assert.True(t, outflow.SignedAmount().IsNegative())
	})
}

func TestExpense(t *testing.T) {
	t.Run("creates expense and emits event", func(t *testing.T) {
		expense, err := NewExpense(uuid.New(), nil, decimal.NewFromInt(50000), "إيجار المكتب", time.Time{})
		require.NoError(t, err)
		assert.Len(t, expense.GetDomainEvents(), 1)
		assert.False(t, expense.SpentAt.IsZero())
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), nil, decimal.NewFromInt(50000), " ", time.Time{})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), nil, decimal.Zero, "إيجار", time.Time{})
		assert.Error(t, err)
	})
}

func TestExpenseCategory(t *testing.T) {
	category, err := NewExpenseCategory(uuid.New(), "تسويق", "حملات إعلانية")
	require.NoError(t, err)

	assert.Error(t, category.Rename(" "))
	require.NoError(t, category.Rename("إعلانات"))
	assert.Equal(t, "إعلانات", category.Name)
}
