package accounting

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// CashAccount is the per-platform cash box. Every platform gets exactly one,
// created lazily on first use. The balance only moves through recorded
// transactions so that the ledger always explains the figure.
type CashAccount struct {
	shared.PlatformAggregateRoot
	Name     string          `gorm:"type:varchar(100);not null;default:'الصندوق الرئيسي'"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency string          `gorm:"type:varchar(3);not null;default:'IQD'"`
}

// TableName returns the table name for GORM
func (CashAccount) TableName() string {
	return "cash_accounts"
}

// NewCashAccount creates the cash account for a platform
func NewCashAccount(platformID uuid.UUID, name string) *CashAccount {
	if name == "" {
		name = "الصندوق الرئيسي"
	}
	return &CashAccount{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		Name:                  name,
		Balance:               decimal.Zero,
		Currency:              string(valueobject.DefaultCurrency),
	}
}

// Apply records a transaction against the account and moves the balance.
// Withdrawals may not overdraw the account.
func (a *CashAccount) Apply(tx *CashTransaction) error {
	if tx.AccountID != a.ID {
		return shared.NewDomainError("ACCOUNT_MISMATCH", "Transaction belongs to a different account")
	}

	next := valueobject.NewMoneyIQD(a.Balance).MustAdd(valueobject.NewMoneyIQD(tx.SignedAmount()))
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_FUNDS",
			fmt.Sprintf("Balance %s cannot cover withdrawal of %s", a.Balance, tx.Amount))
	}

	tx.BalanceAfter = next.Amount()
	a.Balance = next.Amount()
	a.AddDomainEvent(NewCashBalanceChangedEvent(a, tx))

	return nil
}
