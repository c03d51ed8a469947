package delivery

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// Setting holds a platform's delivery pricing: a default fee, optional
// per-governorate overrides, and an optional order total above which
// delivery is free.
type Setting struct {
	shared.PlatformAggregateRoot
	DefaultFee    decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	FreeThreshold *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Enabled       bool             `gorm:"not null;default:true"`
	Fees          []GovernorateFee `gorm:"foreignKey:SettingID"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "delivery_settings"
}

// GovernorateFee overrides the default fee for one governorate
type GovernorateFee struct {
	shared.BaseEntity
	SettingID   uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_delivery_fee_setting_gov,priority:1"`
	Governorate valueobject.Governorate `gorm:"type:varchar(30);not null;uniqueIndex:idx_delivery_fee_setting_gov,priority:2"`
	Fee         decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (GovernorateFee) TableName() string {
	return "delivery_governorate_fees"
}

// NewSetting creates the delivery setting for a platform
func NewSetting(platformID uuid.UUID, defaultFee decimal.Decimal) (*Setting, error) {
	if defaultFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Default delivery fee cannot be negative")
	}
	return &Setting{
		PlatformAggregateRoot: shared.NewPlatformAggregateRoot(platformID),
		DefaultFee:            defaultFee,
		Enabled:               true,
		Fees:                  make([]GovernorateFee, 0),
	}, nil
}

// SetDefaultFee updates the default delivery fee
func (s *Setting) SetDefaultFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Default delivery fee cannot be negative")
	}
	s.DefaultFee = fee
	s.UpdatedAt = time.Now()
	return nil
}

// SetFreeThreshold sets the order total above which delivery is free.
// A nil threshold disables free delivery.
func (s *Setting) SetFreeThreshold(threshold *decimal.Decimal) error {
	if threshold != nil && !threshold.IsPositive() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Free delivery threshold must be positive")
	}
	s.FreeThreshold = threshold
	s.UpdatedAt = time.Now()
	return nil
}

// SetEnabled toggles delivery fee collection
func (s *Setting) SetEnabled(enabled bool) {
	s.Enabled = enabled
	s.UpdatedAt = time.Now()
}

// SetGovernorateFee sets or replaces the fee override for a governorate
func (s *Setting) SetGovernorateFee(gov valueobject.Governorate, fee decimal.Decimal) error {
	if !gov.IsValid() {
		return shared.NewDomainError("INVALID_GOVERNORATE", fmt.Sprintf("Unknown governorate %q", gov))
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	for idx := range s.Fees {
		if s.Fees[idx].Governorate == gov {
			s.Fees[idx].Fee = fee
			s.Fees[idx].UpdatedAt = time.Now()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	s.Fees = append(s.Fees, GovernorateFee{
		BaseEntity:  shared.NewBaseEntity(),
		SettingID:   s.ID,
		Governorate: gov,
		Fee:         fee,
	})
	s.UpdatedAt = time.Now()

	return nil
}

// RemoveGovernorateFee drops the override, reverting to the default fee
func (s *Setting) RemoveGovernorateFee(gov valueobject.Governorate) error {
	for idx := range s.Fees {
		if s.Fees[idx].Governorate == gov {
			s.Fees = append(s.Fees[:idx], s.Fees[idx+1:]...)
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("FEE_NOT_FOUND", "No fee override for governorate")
}

// FeeFor resolves the delivery fee for a governorate and order subtotal
// after discount. Disabled delivery and totals at or above the free
// threshold both resolve to zero.
func (s *Setting) FeeFor(gov valueobject.Governorate, netTotal decimal.Decimal) decimal.Decimal {
	if !s.Enabled {
		return decimal.Zero
	}
	if s.FreeThreshold != nil && netTotal.GreaterThanOrEqual(*s.FreeThreshold) {
		return decimal.Zero
	}
	for _, fee := range s.Fees {
		if fee.Governorate == gov {
			return fee.Fee
		}
	}
	return s.DefaultFee
}
