package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/delivery"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// UpdateSettingRequest changes the platform's delivery configuration
type UpdateSettingRequest struct {
	DefaultFee    decimal.Decimal  `json:"default_fee" binding:"required"`
	FreeThreshold *decimal.Decimal `json:"free_threshold"`
	Enabled       *bool            `json:"enabled"`
}

// SetGovernorateFeeRequest sets or updates a per-governorate override
type SetGovernorateFeeRequest struct {
	Governorate string          `json:"governorate" binding:"required,governorate"`
	Fee         decimal.Decimal `json:"fee" binding:"required"`
}

// GovernorateFeeResponse is one override in API responses
type GovernorateFeeResponse struct {
	Governorate string          `json:"governorate"`
	ArabicName  string          `json:"arabic_name"`
	Fee         decimal.Decimal `json:"fee"`
}

// SettingResponse represents the delivery configuration in API responses
type SettingResponse struct {
	DefaultFee    decimal.Decimal          `json:"default_fee"`
	FreeThreshold *decimal.Decimal         `json:"free_threshold,omitempty"`
	Enabled       bool                     `json:"enabled"`
	Fees          []GovernorateFeeResponse `json:"fees"`
}

// QuoteResponse is the fee quoted for a governorate and order total
type QuoteResponse struct {
	Governorate string          `json:"governorate"`
	Fee         decimal.Decimal `json:"fee"`
}

// DeliveryService manages per-platform delivery fees
type DeliveryService struct {
	settingRepo delivery.SettingRepository
	logger      *zap.Logger
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(settingRepo delivery.SettingRepository, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		settingRepo: settingRepo,
		logger:      logger,
	}
}

// Get returns the platform's delivery configuration, creating a disabled-fee
// default on first access
func (s *DeliveryService) Get(ctx context.Context, platformID uuid.UUID) (*SettingResponse, error) {
	setting, err := s.setting(ctx, platformID)
	if err != nil {
		return nil, err
	}
	response := toSettingResponse(setting)
	return &response, nil
}

// Update changes the default fee, free threshold and enabled flag
func (s *DeliveryService) Update(ctx context.Context, platformID uuid.UUID, req UpdateSettingRequest) (*SettingResponse, error) {
	setting, err := s.setting(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := setting.SetDefaultFee(req.DefaultFee); err != nil {
		return nil, err
	}
	if err := setting.SetFreeThreshold(req.FreeThreshold); err != nil {
		return nil, err
	}
	if req.Enabled != nil {
		setting.SetEnabled(*req.Enabled)
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	response := toSettingResponse(setting)
	return &response, nil
}

// SetGovernorateFee sets or replaces the override for one governorate
func (s *DeliveryService) SetGovernorateFee(ctx context.Context, platformID uuid.UUID, req SetGovernorateFeeRequest) (*SettingResponse, error) {
	gov, err := valueobject.ParseGovernorate(req.Governorate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_GOVERNORATE", err.Error())
	}

	setting, err := s.setting(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := setting.SetGovernorateFee(gov, req.Fee); err != nil {
		return nil, err
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	response := toSettingResponse(setting)
	return &response, nil
}

// RemoveGovernorateFee removes an override, falling back to the default fee
func (s *DeliveryService) RemoveGovernorateFee(ctx context.Context, platformID uuid.UUID, governorate string) (*SettingResponse, error) {
	gov, err := valueobject.ParseGovernorate(governorate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_GOVERNORATE", err.Error())
	}

	setting, err := s.setting(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := setting.RemoveGovernorateFee(gov); err != nil {
		return nil, err
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	response := toSettingResponse(setting)
	return &response, nil
}

// Quote returns the fee for a governorate and net order total. Used by the
// storefront to show delivery charges before submission.
func (s *DeliveryService) Quote(ctx context.Context, platformID uuid.UUID, governorate string, netTotal decimal.Decimal) (*QuoteResponse, error) {
	gov, err := valueobject.ParseGovernorate(governorate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_GOVERNORATE", err.Error())
	}

	setting, err := s.settingRepo.FindForPlatform(ctx, platformID)
	if err != nil {
		if err == shared.ErrNotFound {
			return &QuoteResponse{Governorate: gov.String(), Fee: decimal.Zero}, nil
		}
		return nil, err
	}

	return &QuoteResponse{Governorate: gov.String(), Fee: setting.FeeFor(gov, netTotal)}, nil
}

func (s *DeliveryService) setting(ctx context.Context, platformID uuid.UUID) (*delivery.Setting, error) {
	setting, err := s.settingRepo.FindForPlatform(ctx, platformID)
	if err == nil {
		return setting, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	setting, err = delivery.NewSetting(platformID, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func toSettingResponse(setting *delivery.Setting) SettingResponse {
	fees := make([]GovernorateFeeResponse, len(setting.Fees))
	for i, fee := range setting.Fees {
		fees[i] = GovernorateFeeResponse{
			Governorate: fee.Governorate.String(),
			ArabicName:  fee.Governorate.ArabicName(),
			Fee:         fee.Fee,
		}
	}
	return SettingResponse{
		DefaultFee:    setting.DefaultFee,
		FreeThreshold: setting.FreeThreshold,
		Enabled:       setting.Enabled,
		Fees:          fees,
	}
}
