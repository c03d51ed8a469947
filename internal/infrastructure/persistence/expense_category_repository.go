package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormExpenseCategoryRepository implements ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByIDForPlatform finds a category by ID within a platform
func (r *GormExpenseCategoryRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*accounting.ExpenseCategory, error) {
	var category accounting.ExpenseCategory
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND id = ?", platformID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAllForPlatform lists categories for a platform
func (r *GormExpenseCategoryRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID) ([]accounting.ExpenseCategory, error) {
	var categories []accounting.ExpenseCategory
	if err := r.db.WithContext(ctx).
		Where("platform_id = ?", platformID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, category *accounting.ExpenseCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteForPlatform deletes a category within a platform
func (r *GormExpenseCategoryRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&accounting.ExpenseCategory{}, "platform_id = ? AND id = ?", platformID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountExpenses counts expenses assigned to a category
func (r *GormExpenseCategoryRepository) CountExpenses(ctx context.Context, platformID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&accounting.Expense{}).
		Where("platform_id = ? AND category_id = ?", platformID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormExpenseCategoryRepository implements ExpenseCategoryRepository
var _ accounting.ExpenseCategoryRepository = (*GormExpenseCategoryRepository)(nil)
