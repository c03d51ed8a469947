package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tajer/backend/internal/domain/accounting"
)

// DepositRequest puts cash into the account
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// WithdrawRequest takes cash out of the account
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// RecordExpenseRequest records an expense and books the matching cash
// withdrawal
type RecordExpenseRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// UpdateExpenseRequest changes an expense record
type UpdateExpenseRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	SpentAt     time.Time       `json:"spent_at" binding:"required"`
}

// CreateExpenseCategoryRequest creates an expense category
type CreateExpenseCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// AccountResponse represents the cash account in API responses
type AccountResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description,omitempty"`
	ReferenceID  *uuid.UUID      `json:"reference_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseCategoryResponse represents an expense category in API responses
type ExpenseCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAccountResponse converts a cash account to its API representation
func ToAccountResponse(a *accounting.CashAccount) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Balance:  a.Balance,
		Currency: a.Currency,
	}
}

// ToTransactionResponse converts a ledger entry to its API representation
func ToTransactionResponse(t *accounting.CashTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Type:         t.Type.String(),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		ReferenceID:  t.ReferenceID,
		CreatedAt:    t.CreatedAt,
	}
}

// ToExpenseResponse converts an expense to its API representation
func ToExpenseResponse(e *accounting.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount,
		Description: e.Description,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseCategoryResponse converts a category to its API representation
func ToExpenseCategoryResponse(c *accounting.ExpenseCategory) ExpenseCategoryResponse {
	return ExpenseCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
