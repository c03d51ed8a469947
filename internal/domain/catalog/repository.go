package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tajer/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID (variants preloaded)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForPlatform finds a product by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*Product, error)

	// FindByIDsForPlatform finds multiple products by ID within a platform
	FindByIDsForPlatform(ctx context.Context, platformID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindAllForPlatform finds all products for a platform with filtering
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByCategory finds products in a category
	FindByCategory(ctx context.Context, platformID, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindLowStock finds active products at or below their low-stock threshold
	FindLowStock(ctx context.Context, platformID uuid.UUID) ([]Product, error)

	// Save creates or updates a product together with its variants
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// DeleteForPlatform deletes a product for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountForPlatform counts products for a platform with optional filters
	CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error)

	// CountOrderReferences counts order line items referencing the product
	CountOrderReferences(ctx context.Context, platformID, id uuid.UUID) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByIDForPlatform finds a category by ID within a platform
	FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*Category, error)

	// FindAllForPlatform finds all categories for a platform
	FindAllForPlatform(ctx context.Context, platformID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// DeleteForPlatform deletes a category for a platform
	DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error

	// CountProducts counts products assigned to a category
	CountProducts(ctx context.Context, platformID, categoryID uuid.UUID) (int64, error)
}
