package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// Query narrows order listings beyond generic pagination
type Query struct {
	shared.Filter
	Status      Status
	Source      Source
	Governorate valueobject.Governorate
	From        *time.Time
	To          *time.Time
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID (items preloaded)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForPlatform finds an order by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*Order, error)

	// FindByNumberForPlatform finds an order by its order number within a platform
	FindByNumberForPlatform(ctx context.Context, platformID uuid.UUID, orderNumber string) (*Order, error)

	// FindByIdempotencyKey finds an order by its submission key within a platform
	FindByIdempotencyKey(ctx context.Context, platformID uuid.UUID, key string) (*Order, error)

	// FindAllForPlatform finds orders for a platform matching the query
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID, query Query) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error

	// DeleteForPlatform deletes an order for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountForPlatform counts orders for a platform matching the query
	CountForPlatform(ctx context.Context, platformID uuid.UUID, query Query) (int64, error)

	// CountByStatusForPlatform returns order counts grouped by status
	CountByStatusForPlatform(ctx context.Context, platformID uuid.UUID) (map[Status]int64, error)

	// NextOrderNumber reserves the next sequential order number for a platform
	NextOrderNumber(ctx context.Context, platformID uuid.UUID) (string, error)
}
