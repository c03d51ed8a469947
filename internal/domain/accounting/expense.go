package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

// ExpenseCategory is a user-defined grouping for expenses, scoped to a
// platform. Merchants create their own categories rather than picking from
// a fixed list.
type ExpenseCategory struct {
	shared.PlatformAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_expense_cat_platform_name,priority:2"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// NewExpenseCategory creates an expense category
func NewExpenseCategory(platformID uuid.UUID, name, description string) (*ExpenseCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	return &ExpenseCategory{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		Name:                  name,
		Description:           description,
	}, nil
}

// Rename updates the category name
func (c *ExpenseCategory) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// Expense is a recorded business expense. Recording an expense also books a
// withdrawal against the cash account.
type Expense struct {
	shared.PlatformAggregateRoot
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	SpentAt     time.Time       `gorm:"not null;index"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates an expense record
func NewExpense(platformID uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, description string, spentAt time.Time) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	expense := &Expense{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		CategoryID:            categoryID,
		Amount:                amount,
		Description:           description,
		SpentAt:               spentAt,
	}
	expense.AddDomainEvent(NewExpenseRecordedEvent(expense))

	return expense, nil
}

// Update modifies an expense record
func (e *Expense) Update(categoryID *uuid.UUID, amount decimal.Decimal, description string, spentAt time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}

	e.CategoryID = categoryID
	e.Amount = amount
	e.Description = description
	if !spentAt.IsZero() {
		e.SpentAt = spentAt
	}
	e.UpdatedAt = time.Now()

	return nil
}
