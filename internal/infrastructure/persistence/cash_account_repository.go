package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormCashAccountRepository implements CashAccountRepository using GORM
type GormCashAccountRepository struct {
	db *gorm.DB
}

// NewGormCashAccountRepository creates a new GormCashAccountRepository
func NewGormCashAccountRepository(db *gorm.DB) *GormCashAccountRepository {
	return &GormCashAccountRepository{db: db}
}

// FindForPlatform returns the platform's cash account, if created
func (r *GormCashAccountRepository) FindForPlatform(ctx context.Context, platformID uuid.UUID) (*accounting.CashAccount, error) {
	var account accounting.CashAccount
	if err := r.db.WithContext(ctx).
		Where("platform_id = ?", platformID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Save creates or updates a cash account
func (r *GormCashAccountRepository) Save(ctx context.Context, account *accounting.CashAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormCashAccountRepository) SaveWithLock(ctx context.Context, account *accounting.CashAccount) error {
	result := r.db.WithContext(ctx).
		Model(account).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]interface{}{
			"name":       account.Name,
			"balance":    account.Balance,
			"version":    account.Version,
			"updated_at": account.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Cash account was modified by another transaction")
	}
	return nil
}

// Ensure GormCashAccountRepository implements CashAccountRepository
var _ accounting.CashAccountRepository = (*GormCashAccountRepository)(nil)
