package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/delivery"
	"github.com/tajer/backend/internal/domain/shared"
)

// GormDeliverySettingRepository implements SettingRepository using GORM
type GormDeliverySettingRepository struct {
	db *gorm.DB
}

// NewGormDeliverySettingRepository creates a new GormDeliverySettingRepository
func NewGormDeliverySettingRepository(db *gorm.DB) *GormDeliverySettingRepository {
	return &GormDeliverySettingRepository{db: db}
}

// FindForPlatform returns the platform's delivery setting with fee overrides preloaded
func (r *GormDeliverySettingRepository) FindForPlatform(ctx context.Context, platformID uuid.UUID) (*delivery.Setting, error) {
	var setting delivery.Setting
	if err := r.db.WithContext(ctx).
		Preload("Fees").
		Where("platform_id = ?", platformID).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// Save creates or updates the setting together with its fee overrides
func (r *GormDeliverySettingRepository) Save(ctx context.Context, setting *delivery.Setting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(setting).Error; err != nil {
			return err
		}
		// Remove overrides dropped from the aggregate since it was loaded
		keep := make([]uuid.UUID, 0, len(setting.Fees))
		for _, fee := range setting.Fees {
			keep = append(keep, fee.ID)
		}
		del := tx.Where("setting_id = ?", setting.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		return del.Delete(&delivery.GovernorateFee{}).Error
	})
}

// Ensure GormDeliverySettingRepository implements SettingRepository
var _ delivery.SettingRepository = (*GormDeliverySettingRepository)(nil)
