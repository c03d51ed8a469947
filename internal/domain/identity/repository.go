package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tajer/backend/internal/domain/shared"
)

// PlatformRepository defines the interface for platform persistence
type PlatformRepository interface {
	// FindByID finds a platform by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Platform, error)

	// FindBySubdomain finds a platform by its subdomain
	FindBySubdomain(ctx context.Context, subdomain string) (*Platform, error)

	// FindAll lists platforms matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Platform, error)

	// FindExpiring lists active platforms whose subscription ends before the cutoff
	FindExpiring(ctx context.Context, cutoff time.Time) ([]Platform, error)

	// Save creates or updates a platform
	Save(ctx context.Context, platform *Platform) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, platform *Platform) error

	// Count counts platforms matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForPlatform finds a user by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username within a platform
	FindByUsername(ctx context.Context, platformID uuid.UUID, username string) (*User, error)

	// FindAllForPlatform lists users for a platform
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// DeleteForPlatform deletes a user for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountForPlatform counts users for a platform
	CountForPlatform(ctx context.Context, platformID uuid.UUID) (int64, error)
}
