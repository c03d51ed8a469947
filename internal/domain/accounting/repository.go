package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

// CashAccountRepository defines the interface for cash account persistence
type CashAccountRepository interface {
	// FindForPlatform returns the platform's cash account, if created
	FindForPlatform(ctx context.Context, platformID uuid.UUID) (*CashAccount, error)

	// Save creates or updates a cash account
	Save(ctx context.Context, account *CashAccount) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, account *CashAccount) error
}

// CashTransactionRepository defines the interface for ledger persistence
type CashTransactionRepository interface {
	// FindByIDForPlatform finds a transaction by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*CashTransaction, error)

	// FindAllForPlatform lists transactions for a platform
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]CashTransaction, error)

	// FindByReference finds transactions linked to a reference (e.g. an order)
	FindByReference(ctx context.Context, platformID, referenceID uuid.UUID) ([]CashTransaction, error)

	// Save creates a transaction record
	Save(ctx context.Context, tx *CashTransaction) error

	// CountForPlatform counts transactions for a platform
	CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error)

	// SumByTypeForPeriod sums transaction amounts by type within a period
	SumByTypeForPeriod(ctx context.Context, platformID uuid.UUID, txType TransactionType, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForPlatform finds an expense by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*Expense, error)

	// FindAllForPlatform lists expenses for a platform
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// DeleteForPlatform deletes an expense for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountForPlatform counts expenses for a platform
	CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error)

	// SumForPeriod sums expense amounts within a period
	SumForPeriod(ctx context.Context, platformID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseCategoryRepository defines the interface for category persistence
type ExpenseCategoryRepository interface {
	// FindByIDForPlatform finds a category by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*ExpenseCategory, error)

	// FindAllForPlatform lists categories for a platform
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID) ([]ExpenseCategory, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *ExpenseCategory) error

	// DeleteForPlatform deletes a category for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountExpenses counts expenses assigned to a category
	CountExpenses(ctx context.Context, platformID, categoryID uuid.UUID) (int64, error)
}
