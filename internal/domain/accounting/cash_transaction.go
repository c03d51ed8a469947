package accounting

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

// TransactionType classifies a cash movement
type TransactionType string

const (
	TransactionDeposit      TransactionType = "deposit"
	TransactionWithdrawal   TransactionType = "withdrawal"
	TransactionOrderPayment TransactionType = "order_payment"
	TransactionOrderRefund  TransactionType = "order_refund"
	TransactionExpense      TransactionType = "expense"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionOrderPayment,
		TransactionOrderRefund, TransactionExpense:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsInflow returns true for types that increase the balance
func (t TransactionType) IsInflow() bool {
	return t == TransactionDeposit || t == TransactionOrderPayment
}

// CashTransaction is a single ledger entry against a cash account. Amounts
// are stored positive; the type determines the direction.
type CashTransaction struct {
	shared.PlatformAggregateRoot
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         TransactionType `gorm:"type:varchar(20);not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description  string          `gorm:"type:varchar(500)"`
	ReferenceID  *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CashTransaction) TableName() string {
	return "cash_transactions"
}

// NewCashTransaction creates a ledger entry. referenceID links order-driven
// movements to their order; it is nil for manual deposits and withdrawals.
func NewCashTransaction(platformID, accountID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string, referenceID *uuid.UUID) (*CashTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", fmt.Sprintf("Unknown transaction type %q", txType))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	return &CashTransaction{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		AccountID:             accountID,
		Type:                  txType,
		Amount:                amount,
		Description:           description,
		ReferenceID:           referenceID,
	}, nil
}

// SignedAmount returns the amount with direction applied
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	if t.Type.IsInflow() {
		return t.Amount
	}
	return t.Amount.Neg()
}
