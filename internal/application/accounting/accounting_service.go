package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/shared"
)

// AccountingService handles the cash account, its ledger and expenses.
// Every balance movement goes through a transaction applied to the account;
// the balance is never written directly.
type AccountingService struct {
	accountRepo    accounting.CashAccountRepository
	txRepo         accounting.CashTransactionRepository
	expenseRepo    accounting.ExpenseRepository
	categoryRepo   accounting.ExpenseCategoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAccountingService creates a new accounting service
func NewAccountingService(
	accountRepo accounting.CashAccountRepository,
	txRepo accounting.CashTransactionRepository,
	expenseRepo accounting.ExpenseRepository,
	categoryRepo accounting.ExpenseCategoryRepository,
	logger *zap.Logger,
) *AccountingService {
	return &AccountingService{
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AccountingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Account returns the platform's cash account, creating it on first use
func (s *AccountingService) Account(ctx context.Context, platformID uuid.UUID) (*AccountResponse, error) {
	account, err := s.account(ctx, platformID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Deposit books a cash inflow
func (s *AccountingService) Deposit(ctx context.Context, platformID uuid.UUID, req DepositRequest, actorID *uuid.UUID) (*TransactionResponse, error) {
	return s.book(ctx, platformID, accounting.TransactionDeposit, req.Amount, req.Description, nil, actorID)
}

// Withdraw books a cash outflow. Withdrawals exceeding the balance are
// rejected by the account.
func (s *AccountingService) Withdraw(ctx context.Context, platformID uuid.UUID, req WithdrawRequest, actorID *uuid.UUID) (*TransactionResponse, error) {
	return s.book(ctx, platformID, accounting.TransactionWithdrawal, req.Amount, req.Description, nil, actorID)
}

// BookOrderPayment books the cash collected for a delivered order
func (s *AccountingService) BookOrderPayment(ctx context.Context, platformID, orderID uuid.UUID, amount decimal.Decimal, description string) (*TransactionResponse, error) {
	existing, err := s.txRepo.FindByReference(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Type == accounting.TransactionOrderPayment {
			// Already booked; the delivered event was redelivered
			response := ToTransactionResponse(&existing[i])
			return &response, nil
		}
	}

	return s.book(ctx, platformID, accounting.TransactionOrderPayment, amount, description, &orderID, nil)
}

// BookOrderRefund books the cash returned for a refunded order
func (s *AccountingService) BookOrderRefund(ctx context.Context, platformID, orderID uuid.UUID, amount decimal.Decimal, description string) (*TransactionResponse, error) {
	existing, err := s.txRepo.FindByReference(ctx, platformID, orderID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Type == accounting.TransactionOrderRefund {
			response := ToTransactionResponse(&existing[i])
			return &response, nil
		}
	}

	return s.book(ctx, platformID, accounting.TransactionOrderRefund, amount, description, &orderID, nil)
}

// Transactions lists ledger entries for a platform
func (s *AccountingService) Transactions(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]TransactionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	txs, err := s.txRepo.FindAllForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.CountForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses, total, nil
}

// RecordExpense records an expense and books the matching cash withdrawal
func (s *AccountingService) RecordExpense(ctx context.Context, platformID uuid.UUID, req RecordExpenseRequest, actorID *uuid.UUID) (*ExpenseResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForPlatform(ctx, platformID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category does not exist")
		}
	}

	spentAt := time.Now()
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := accounting.NewExpense(platformID, req.CategoryID, req.Amount, req.Description, spentAt)
	if err != nil {
		return nil, err
	}
	expense.CreatedBy = actorID

	if _, err := s.book(ctx, platformID, accounting.TransactionExpense, req.Amount, req.Description, &expense.ID, actorID); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, expense)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// UpdateExpense changes an expense record. The cash ledger is not rewritten;
// correct large mistakes with a deposit.
func (s *AccountingService) UpdateExpense(ctx context.Context, platformID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForPlatform(ctx, platformID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForPlatform(ctx, platformID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category does not exist")
		}
	}

	if err := expense.Update(req.CategoryID, req.Amount, req.Description, req.SpentAt); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListExpenses lists expenses for a platform
func (s *AccountingService) ListExpenses(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]ExpenseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	expenses, err := s.expenseRepo.FindAllForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, total, nil
}

// DeleteExpense removes an expense record
func (s *AccountingService) DeleteExpense(ctx context.Context, platformID, expenseID uuid.UUID) error {
	return s.expenseRepo.DeleteForPlatform(ctx, platformID, expenseID)
}

// CreateExpenseCategory creates an expense category
func (s *AccountingService) CreateExpenseCategory(ctx context.Context, platformID uuid.UUID, req CreateExpenseCategoryRequest) (*ExpenseCategoryResponse, error) {
	category, err := accounting.NewExpenseCategory(platformID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToExpenseCategoryResponse(category)
	return &response, nil
}

// ListExpenseCategories lists expense categories for a platform
func (s *AccountingService) ListExpenseCategories(ctx context.Context, platformID uuid.UUID) ([]ExpenseCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForPlatform(ctx, platformID)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToExpenseCategoryResponse(&categories[i])
	}
	return responses, nil
}

// DeleteExpenseCategory removes a category. Categories with recorded
// expenses cannot be deleted.
func (s *AccountingService) DeleteExpenseCategory(ctx context.Context, platformID, categoryID uuid.UUID) error {
	count, err := s.categoryRepo.CountExpenses(ctx, platformID, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has expenses recorded")
	}

	return s.categoryRepo.DeleteForPlatform(ctx, platformID, categoryID)
}

// book applies a transaction to the account and persists both sides
func (s *AccountingService) book(ctx context.Context, platformID uuid.UUID, txType accounting.TransactionType, amount decimal.Decimal, description string, referenceID, actorID *uuid.UUID) (*TransactionResponse, error) {
	account, err := s.account(ctx, platformID)
	if err != nil {
		return nil, err
	}

	tx, err := accounting.NewCashTransaction(platformID, account.ID, txType, amount, description, referenceID)
	if err != nil {
		return nil, err
	}
	tx.CreatedBy = actorID

	if err := account.Apply(tx); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, account)

	s.logger.Info("cash transaction booked",
		zap.String("platform_id", platformID.String()),
		zap.String("type", txType.String()),
		zap.String("amount", amount.String()),
	)

	response := ToTransactionResponse(tx)
	return &response, nil
}

func (s *AccountingService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish accounting event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	aggregate.ClearDomainEvents()
}

// account loads the platform's cash account, creating it on first use
func (s *AccountingService) account(ctx context.Context, platformID uuid.UUID) (*accounting.CashAccount, error) {
	account, err := s.accountRepo.FindForPlatform(ctx, platformID)
	if err == nil {
		return account, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	account = accounting.NewCashAccount(platformID, "")
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
