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

// GormCashTransactionRepository implements CashTransactionRepository using GORM
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// transactionSortColumns is the set of columns callers may sort the ledger by
var transactionSortColumns = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
	"type":       "type",
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// FindByIDForPlatform finds a transaction by ID within a platform
func (r *GormCashTransactionRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*accounting.CashTransaction, error) {
	var tx accounting.CashTransaction
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND id = ?", platformID, id).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForPlatform lists transactions for a platform
func (r *GormCashTransactionRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]accounting.CashTransaction, error) {
	var txs []accounting.CashTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&accounting.CashTransaction{}).Where("platform_id = ?", platformID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByReference finds transactions linked to a reference, e.g. an order
func (r *GormCashTransactionRepository) FindByReference(ctx context.Context, platformID, referenceID uuid.UUID) ([]accounting.CashTransaction, error) {
	var txs []accounting.CashTransaction
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND reference_id = ?", platformID, referenceID).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Save creates a transaction record
func (r *GormCashTransactionRepository) Save(ctx context.Context, tx *accounting.CashTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// CountForPlatform counts transactions for a platform
func (r *GormCashTransactionRepository) CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&accounting.CashTransaction{}).Where("platform_id = ?", platformID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByTypeForPeriod sums transaction amounts by type within a period
func (r *GormCashTransactionRepository) SumByTypeForPeriod(ctx context.Context, platformID uuid.UUID, txType accounting.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&accounting.CashTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("platform_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			platformID, txType, from, to).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormCashTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, transactionSortColumns, "created_at DESC"))

	return query
}

func (r *GormCashTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "account_id":
			query = query.Where("account_id = ?", value)
		case "from":
			query = query.Where("created_at >= ?", value)
		case "to":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

// Ensure GormCashTransactionRepository implements CashTransactionRepository
var _ accounting.CashTransactionRepository = (*GormCashTransactionRepository)(nil)
