package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForPlatform finds an expense by ID within a platform
func (r *GormExpenseRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*accounting.Expense, error) {
	var expense accounting.Expense
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND id = ?", platformID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForPlatform lists expenses for a platform
func (r *GormExpenseRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]accounting.Expense, error) {
	var expenses []accounting.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&accounting.Expense{}).Where("platform_id = ?", platformID),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *accounting.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// DeleteForPlatform deletes an expense within a platform
func (r *GormExpenseRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&accounting.Expense{}, "platform_id = ? AND id = ?", platformID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForPlatform counts expenses for a platform
func (r *GormExpenseRepository) CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&accounting.Expense{}).Where("platform_id = ?", platformID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumForPeriod sums expense amounts within a period
func (r *GormExpenseRepository) SumForPeriod(ctx context.Context, platformID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&accounting.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("platform_id = ? AND spent_at >= ? AND spent_at < ?", platformID, from, to).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// expenseSortColumns is the set of columns callers may sort expenses by
var expenseSortColumns = map[string]string{
	"created_at": "created_at",
	"spent_at":   "spent_at",
	"amount":     "amount",
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, expenseSortColumns, "spent_at DESC"))

	return query
}

func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			if value == nil {
				query = query.Where("category_id IS NULL")
			} else {
				query = query.Where("category_id = ?", value)
			}
		case "from":
			query = query.Where("spent_at >= ?", value)
		case "to":
			query = query.Where("spent_at < ?", value)
		}
	}

	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ accounting.ExpenseRepository = (*GormExpenseRepository)(nil)
