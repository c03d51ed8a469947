package delivery

import (
	"context"

	"github.com/google/uuid"
)

// SettingRepository defines the interface for delivery setting persistence
type SettingRepository interface {
	// FindForPlatform returns the platform's delivery setting, if created
	FindForPlatform(ctx context.Context, platformID uuid.UUID) (*Setting, error)

	// Save creates or updates the setting together with its fee overrides
	Save(ctx context.Context, setting *Setting) error
}
