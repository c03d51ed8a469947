package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/shared"
)

// PlatformService handles platform lifecycle operations
type PlatformService struct {
	platformRepo identity.PlatformRepository
	logger       *zap.Logger
}

// NewPlatformService creates a new platform service
func NewPlatformService(platformRepo identity.PlatformRepository, logger *zap.Logger) *PlatformService {
	return &PlatformService{
		platformRepo: platformRepo,
		logger:       logger,
	}
}

// Get retrieves a platform by ID
func (s *PlatformService) Get(ctx context.Context, platformID uuid.UUID) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	response := ToPlatformResponse(platform)
	return &response, nil
}

// GetBySubdomain retrieves a platform by its subdomain. Used by the public
// landing page to resolve which store a visitor is on.
func (s *PlatformService) GetBySubdomain(ctx context.Context, subdomain string) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	response := ToPlatformResponse(platform)
	return &response, nil
}

// Update changes platform settings
func (s *PlatformService) Update(ctx context.Context, platformID uuid.UUID, req UpdatePlatformRequest) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := platform.Update(req.Name, req.OwnerPhone, req.WhatsAppNumber); err != nil {
		return nil, err
	}

	if err := s.platformRepo.SaveWithLock(ctx, platform); err != nil {
		return nil, err
	}

	response := ToPlatformResponse(platform)
	return &response, nil
}

// Suspend suspends a platform with a reason
func (s *PlatformService) Suspend(ctx context.Context, platformID uuid.UUID, req SuspendPlatformRequest) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := platform.Suspend(req.Reason); err != nil {
		return nil, err
	}

	if err := s.platformRepo.SaveWithLock(ctx, platform); err != nil {
		return nil, err
	}

	s.logger.Warn("platform suspended",
		zap.String("platform_id", platformID.String()),
		zap.String("reason", req.Reason),
	)

	response := ToPlatformResponse(platform)
	return &response, nil
}

// Reactivate lifts a suspension or expired state
func (s *PlatformService) Reactivate(ctx context.Context, platformID uuid.UUID) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := platform.Reactivate(); err != nil {
		return nil, err
	}

	if err := s.platformRepo.SaveWithLock(ctx, platform); err != nil {
		return nil, err
	}

	response := ToPlatformResponse(platform)
	return &response, nil
}

// ExtendSubscription moves the subscription end date forward
func (s *PlatformService) ExtendSubscription(ctx context.Context, platformID uuid.UUID, req ExtendSubscriptionRequest) (*PlatformResponse, error) {
	platform, err := s.platformRepo.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if err := platform.ExtendSubscription(req.Until); err != nil {
		return nil, err
	}

	if err := s.platformRepo.SaveWithLock(ctx, platform); err != nil {
		return nil, err
	}

	response := ToPlatformResponse(platform)
	return &response, nil
}

// ExpireOverdueSubscriptions marks active platforms with lapsed subscriptions
// as expired. Intended to run periodically.
func (s *PlatformService) ExpireOverdueSubscriptions(ctx context.Context) (int, error) {
	now := time.Now()
	platforms, err := s.platformRepo.FindExpiring(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range platforms {
		platform := &platforms[i]
		if !platform.MarkSubscriptionExpired(now) {
			continue
		}
		if err := s.platformRepo.SaveWithLock(ctx, platform); err != nil {
			s.logger.Error("failed to mark subscription expired",
				zap.String("platform_id", platform.ID.String()),
				zap.Error(err),
			)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("expired overdue subscriptions", zap.Int("count", expired))
	}
	return expired, nil
}

// List lists platforms matching the filter
func (s *PlatformService) List(ctx context.Context, filter shared.Filter) ([]PlatformResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	platforms, err := s.platformRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.platformRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PlatformResponse, len(platforms))
	for i := range platforms {
		responses[i] = ToPlatformResponse(&platforms[i])
	}
	return responses, total, nil
}
