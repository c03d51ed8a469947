package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

// ProductSummary is a read model for per-product inventory. Stock is the
// recorded on-hand figure from the catalog; SoldQuantity aggregates line
// items of shipped and delivered orders, ReturnedQuantity those of refunded
// orders. Remaining is Stock minus SoldQuantity plus ReturnedQuantity,
// floored at zero, and is reported alongside Stock rather than reconciled
// against it.
type ProductSummary struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	CategoryName      string          `json:"category_name,omitempty"`
	Stock             int             `json:"stock"`
	SoldQuantity      int             `json:"sold_quantity"`
	ReturnedQuantity  int             `json:"returned_quantity"`
	Remaining         int             `json:"remaining"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	StockValue        decimal.Decimal `json:"stock_value"`
	SoldRevenue       decimal.Decimal `json:"sold_revenue"`
}

// Overview aggregates inventory across a platform
type Overview struct {
	TotalProducts   int64           `json:"total_products"`
	TotalStock      int64           `json:"total_stock"`
	TotalSold       int64           `json:"total_sold"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

// ReadRepository defines aggregation queries over catalog and orders
type ReadRepository interface {
	// ProductSummaries lists per-product inventory for a platform
	ProductSummaries(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]ProductSummary, int64, error)

	// ProductSummary returns the inventory summary for a single product
	ProductSummary(ctx context.Context, platformID, productID uuid.UUID) (*ProductSummary, error)

	// Overview returns platform-wide inventory totals
	Overview(ctx context.Context, platformID uuid.UUID) (*Overview, error)
}
