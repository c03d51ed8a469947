package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/inventory"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
)

// soldStatuses are the order statuses whose line items count as sold
var soldStatuses = []orders.Status{orders.StatusShipped, orders.StatusDelivered}

// GormInventoryReadRepository implements inventory.ReadRepository by
// aggregating over the catalog and order line items
type GormInventoryReadRepository struct {
	db *gorm.DB
}

// NewGormInventoryReadRepository creates a new GormInventoryReadRepository
func NewGormInventoryReadRepository(db *gorm.DB) *GormInventoryReadRepository {
	return &GormInventoryReadRepository{db: db}
}

// summarySortColumns is the set of columns callers may sort summaries by
var summarySortColumns = map[string]string{
	"name":     "p.name",
	"stock":    "p.stock",
	"price":    "p.price",
	"sold":     "sold_quantity",
	"returned": "returned_quantity",
}

type productSummaryRow struct {
	ProductID         uuid.UUID
	ProductName       string
	CategoryName      string
	Stock             int
	SoldQuantity      int
	ReturnedQuantity  int
	LowStockThreshold int
	Price             decimal.Decimal
	SoldRevenue       decimal.Decimal
}

// ProductSummaries lists per-product inventory for a platform
func (r *GormInventoryReadRepository) ProductSummaries(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]inventory.ProductSummary, int64, error) {
	base := r.summaryQuery(ctx, platformID, filter)
	if filter.Search != "" {
		base = base.Where("p.name ILIKE ?", "%"+filter.Search+"%")
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		base = base.Where("p.category_id = ?", categoryID)
	}
	if _, ok := filter.Filters["low_stock"]; ok {
		base = base.Where("p.low_stock_threshold > 0 AND p.stock <= p.low_stock_threshold")
	}

	var total int64
	countQuery := r.db.WithContext(ctx).Table("products p").Where("p.platform_id = ?", platformID)
	if filter.Search != "" {
		countQuery = countQuery.Where("p.name ILIKE ?", "%"+filter.Search+"%")
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		countQuery = countQuery.Where("p.category_id = ?", categoryID)
	}
	if _, ok := filter.Filters["low_stock"]; ok {
		countQuery = countQuery.Where("p.low_stock_threshold > 0 AND p.stock <= p.low_stock_threshold")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		base = base.Offset(offset).Limit(filter.PageSize)
	}
	base = base.Order(orderClause(filter.OrderBy, filter.OrderDir, summarySortColumns, "p.name ASC"))

	var rows []productSummaryRow
	if err := base.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	summaries := make([]inventory.ProductSummary, len(rows))
	for i, row := range rows {
		summaries[i] = r.toSummary(row)
	}
	return summaries, total, nil
}

// ProductSummary returns the inventory summary for a single product
func (r *GormInventoryReadRepository) ProductSummary(ctx context.Context, platformID, productID uuid.UUID) (*inventory.ProductSummary, error) {
	var row productSummaryRow
	err := r.summaryQuery(ctx, platformID, shared.Filter{}).
		Where("p.id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ProductID == uuid.Nil {
		return nil, shared.ErrNotFound
	}

	summary := r.toSummary(row)
	return &summary, nil
}

// Overview returns platform-wide inventory totals
func (r *GormInventoryReadRepository) Overview(ctx context.Context, platformID uuid.UUID) (*inventory.Overview, error) {
	type overviewRow struct {
		TotalProducts   int64
		TotalStock      int64
		LowStockCount   int64
		OutOfStockCount int64
		TotalStockValue decimal.Decimal
	}

	var row overviewRow
	err := r.db.WithContext(ctx).Table("products p").
		Select(`
			COUNT(*) as total_products,
			COALESCE(SUM(p.stock), 0) as total_stock,
			COUNT(*) FILTER (WHERE p.low_stock_threshold > 0 AND p.stock <= p.low_stock_threshold) as low_stock_count,
			COUNT(*) FILTER (WHERE p.stock <= 0) as out_of_stock_count,
			COALESCE(SUM(p.stock * p.cost), 0) as total_stock_value
		`).
		Where("p.platform_id = ?", platformID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	var totalSold int64
	err = r.db.WithContext(ctx).Table("order_items oi").
		Select("COALESCE(SUM(oi.quantity), 0)").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.platform_id = ? AND o.status IN ?", platformID, soldStatuses).
		Scan(&totalSold).Error
	if err != nil {
		return nil, err
	}

	return &inventory.Overview{
		TotalProducts:   row.TotalProducts,
		TotalStock:      row.TotalStock,
		TotalSold:       totalSold,
		LowStockCount:   row.LowStockCount,
		OutOfStockCount: row.OutOfStockCount,
		TotalStockValue: row.TotalStockValue,
	}, nil
}

// summaryQuery builds the per-product aggregation over sold line items.
// sold_from/sold_to filter entries bound the order dates counted as sold.
func (r *GormInventoryReadRepository) summaryQuery(ctx context.Context, platformID uuid.UUID, filter shared.Filter) *gorm.DB {
	sold := r.db.Table("order_items oi").
		Select("oi.product_id, SUM(oi.quantity) as sold_quantity, SUM(oi.total) as sold_revenue").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.platform_id = ? AND o.status IN ?", platformID, soldStatuses).
		Group("oi.product_id")
	returned := r.db.Table("order_items oi").
		Select("oi.product_id, SUM(oi.quantity) as returned_quantity").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.platform_id = ? AND o.status = ?", platformID, orders.StatusRefunded).
		Group("oi.product_id")
	if from, ok := filter.Filters["sold_from"].(time.Time); ok {
		sold = sold.Where("o.created_at >= ?", from)
		returned = returned.Where("o.created_at >= ?", from)
	}
	if to, ok := filter.Filters["sold_to"].(time.Time); ok {
		sold = sold.Where("o.created_at < ?", to)
		returned = returned.Where("o.created_at < ?", to)
	}

	return r.db.WithContext(ctx).Table("products p").
		Select(`
			p.id as product_id,
			p.name as product_name,
			COALESCE(c.name, '') as category_name,
			p.stock,
			COALESCE(s.sold_quantity, 0) as sold_quantity,
			COALESCE(rt.returned_quantity, 0) as returned_quantity,
			p.low_stock_threshold,
			p.price,
			COALESCE(s.sold_revenue, 0) as sold_revenue
		`).
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN (?) s ON s.product_id = p.id", sold).
		Joins("LEFT JOIN (?) rt ON rt.product_id = p.id", returned).
		Where("p.platform_id = ?", platformID)
}

func (r *GormInventoryReadRepository) toSummary(row productSummaryRow) inventory.ProductSummary {
	remaining := row.Stock - row.SoldQuantity + row.ReturnedQuantity
	if remaining < 0 {
		remaining = 0
	}
	return inventory.ProductSummary{
		ProductID:         row.ProductID,
		ProductName:       row.ProductName,
		CategoryName:      row.CategoryName,
		Stock:             row.Stock,
		SoldQuantity:      row.SoldQuantity,
		ReturnedQuantity:  row.ReturnedQuantity,
		Remaining:         remaining,
		LowStockThreshold: row.LowStockThreshold,
		IsLowStock:        row.LowStockThreshold > 0 && row.Stock <= row.LowStockThreshold,
		StockValue:        row.Price.Mul(decimal.NewFromInt(int64(row.Stock))),
		SoldRevenue:       row.SoldRevenue,
	}
}

// Ensure GormInventoryReadRepository implements ReadRepository
var _ inventory.ReadRepository = (*GormInventoryReadRepository)(nil)
