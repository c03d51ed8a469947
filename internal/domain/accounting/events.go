package accounting

import (
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

const (
	EventTypeCashBalanceChanged = "accounting.cash.balance_changed"
	EventTypeExpenseRecorded    = "accounting.expense.recorded"
)

// CashBalanceChangedEvent is emitted when a transaction moves the balance
type CashBalanceChangedEvent struct {
	shared.BaseDomainEvent
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
}

// NewCashBalanceChangedEvent creates a balance changed event
func NewCashBalanceChangedEvent(account *CashAccount, tx *CashTransaction) *CashBalanceChangedEvent {
	return &CashBalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashBalanceChanged, "CashAccount", account.ID, account.PlatformID),
		TransactionType: tx.Type.String(),
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
	}
}

// ExpenseRecordedEvent is emitted when an expense is recorded
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// NewExpenseRecordedEvent creates an expense recorded event
func NewExpenseRecordedEvent(expense *Expense) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecorded, "Expense", expense.ID, expense.PlatformID),
		Amount:          expense.Amount,
		Description:     expense.Description,
	}
}
