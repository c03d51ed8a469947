package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountingapp "github.com/tajer/backend/internal/application/accounting"
	"github.com/tajer/backend/internal/domain/shared"
)

// AccountingHandler handles cash ledger and expense endpoints
type AccountingHandler struct {
	BaseHandler
	accountingService *accountingapp.AccountingService
}

// NewAccountingHandler creates a new AccountingHandler
func NewAccountingHandler(accountingService *accountingapp.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

// Account returns the platform's cash account.
// GET /api/v1/accounting/account
func (h *AccountingHandler) Account(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	account, err := h.accountingService.Account(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Deposit books a manual cash deposit.
// POST /api/v1/accounting/deposits
func (h *AccountingHandler) Deposit(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req accountingapp.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.accountingService.Deposit(c.Request.Context(), platformID, req, actorIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Withdraw books a manual cash withdrawal.
// POST /api/v1/accounting/withdrawals
func (h *AccountingHandler) Withdraw(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req accountingapp.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.accountingService.Withdraw(c.Request.Context(), platformID, req, actorIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

// Transactions returns a filtered page of cash transactions.
// GET /api/v1/accounting/transactions
func (h *AccountingHandler) Transactions(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	filter := ledgerFilterFromQuery(c)
	if txType := c.Query("type"); txType != "" {
		filter.Filters["type"] = txType
	}

	transactions, total, err := h.accountingService.Transactions(c.Request.Context(), platformID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}

// RecordExpense books an expense and its cash movement.
// POST /api/v1/accounting/expenses
func (h *AccountingHandler) RecordExpense(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req accountingapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.accountingService.RecordExpense(c.Request.Context(), platformID, req, actorIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// UpdateExpense edits an expense record.
// PUT /api/v1/accounting/expenses/:id
func (h *AccountingHandler) UpdateExpense(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req accountingapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.accountingService.UpdateExpense(c.Request.Context(), platformID, expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// ListExpenses returns a filtered page of expenses.
// GET /api/v1/accounting/expenses
func (h *AccountingHandler) ListExpenses(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	filter := ledgerFilterFromQuery(c)
	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			filter.Filters["category_id"] = id
		}
	}

	expenses, total, err := h.accountingService.ListExpenses(c.Request.Context(), platformID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// DeleteExpense removes an expense record.
// DELETE /api/v1/accounting/expenses/:id
func (h *AccountingHandler) DeleteExpense(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.accountingService.DeleteExpense(c.Request.Context(), platformID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateExpenseCategory adds an expense category.
// POST /api/v1/accounting/expense-categories
func (h *AccountingHandler) CreateExpenseCategory(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	var req accountingapp.CreateExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.accountingService.CreateExpenseCategory(c.Request.Context(), platformID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListExpenseCategories returns the platform's expense categories.
// GET /api/v1/accounting/expense-categories
func (h *AccountingHandler) ListExpenseCategories(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	categories, err := h.accountingService.ListExpenseCategories(c.Request.Context(), platformID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// DeleteExpenseCategory removes an unused expense category.
// DELETE /api/v1/accounting/expense-categories/:id
func (h *AccountingHandler) DeleteExpenseCategory(c *gin.Context) {
	platformID, err := getPlatformID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid platform context")
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.accountingService.DeleteExpenseCategory(c.Request.Context(), platformID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func actorIDPtr(c *gin.Context) *uuid.UUID {
	userID, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

func ledgerFilterFromQuery(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if from := c.Query("from"); from != "" {
		filter.Filters["from"] = from
	}
	if to := c.Query("to"); to != "" {
		filter.Filters["to"] = to
	}
	return filter
}
