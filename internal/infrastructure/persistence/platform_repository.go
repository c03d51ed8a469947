package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormPlatformRepository implements PlatformRepository using GORM
type GormPlatformRepository struct {
	db *gorm.DB
}

// NewGormPlatformRepository creates a new GormPlatformRepository
func NewGormPlatformRepository(db *gorm.DB) *GormPlatformRepository {
	return &GormPlatformRepository{db: db}
}

// FindByID finds a platform by its ID
func (r *GormPlatformRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Platform, error) {
	var platform identity.Platform
	if err := r.db.WithContext(ctx).First(&platform, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &platform, nil
}

// FindBySubdomain finds a platform by its subdomain
func (r *GormPlatformRepository) FindBySubdomain(ctx context.Context, subdomain string) (*identity.Platform, error) {
	var platform identity.Platform
	if err := r.db.WithContext(ctx).
		Where("subdomain = ?", strings.ToLower(subdomain)).
		First(&platform).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &platform, nil
}

// FindAll lists platforms matching the filter
func (r *GormPlatformRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Platform, error) {
	var platforms []identity.Platform
	query := r.db.WithContext(ctx).Model(&identity.Platform{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

// FindExpiring lists active platforms whose subscription ends before the cutoff
func (r *GormPlatformRepository) FindExpiring(ctx context.Context, cutoff time.Time) ([]identity.Platform, error) {
	var platforms []identity.Platform
	if err := r.db.WithContext(ctx).
		Where("status = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?",
			identity.PlatformStatusActive, cutoff).
		Order("subscription_expires_at ASC").
		Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

// Save creates or updates a platform
func (r *GormPlatformRepository) Save(ctx context.Context, platform *identity.Platform) error {
	return r.db.WithContext(ctx).Save(platform).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormPlatformRepository) SaveWithLock(ctx context.Context, platform *identity.Platform) error {
	result := r.db.WithContext(ctx).
		Model(platform).
		Where("id = ? AND version = ?", platform.ID, platform.Version-1).
		Updates(map[string]interface{}{
			"name":                    platform.Name,
			"owner_phone":             platform.OwnerPhone,
			"whats_app_number":        platform.WhatsAppNumber,
			"logo_key":                platform.LogoKey,
			"status":                  platform.Status,
			"subscription_expires_at": platform.SubscriptionExpiresAt,
			"suspended_reason":        platform.SuspendedReason,
			"version":                 platform.Version,
			"updated_at":              platform.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Platform was modified by another transaction")
	}
	return nil
}

// Count counts platforms matching the filter
func (r *GormPlatformRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.Platform{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR subdomain ILIKE ?", searchPattern, searchPattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// platformSortColumns is the set of columns callers may sort platforms by
var platformSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"subdomain":  "subdomain",
	"status":     "status",
}

func (r *GormPlatformRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR subdomain ILIKE ?", searchPattern, searchPattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, platformSortColumns, "created_at DESC"))

	return query
}

// Ensure GormPlatformRepository implements PlatformRepository
var _ identity.PlatformRepository = (*GormPlatformRepository)(nil)
