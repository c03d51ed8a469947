package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/report"
	"github.com/tajer/backend/internal/domain/shared/valueobject"
)

// topProductLimit caps the product ranking in the comprehensive report
const topProductLimit = 10

// GormReportRepository implements report.Repository by aggregating over
// orders, products, expenses and the cash ledger
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// DashboardStats computes the dashboard read model
func (r *GormReportRepository) DashboardStats(ctx context.Context, platformID uuid.UUID) (*report.DashboardStats, error) {
	stats := &report.DashboardStats{
		TotalRevenue:   decimal.Zero,
		TotalDiscounts: decimal.Zero,
		TotalExpenses:  decimal.Zero,
		CashBalance:    decimal.Zero,
		OrdersByStatus: map[string]int64{},
		OrdersBySource: map[string]int64{},
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var byStatus []statusRow
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("status, COUNT(*) as count").
		Where("platform_id = ?", platformID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
		stats.TotalOrders += row.Count
		if orders.Status(row.Status) == orders.StatusPending {
			stats.PendingOrders = row.Count
		}
		if orders.Status(row.Status).CountsAsSold() {
			stats.SoldOrders += row.Count
		}
	}

	type sourceRow struct {
		Source string
		Count  int64
	}
	var bySource []sourceRow
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("source, COUNT(*) as count").
		Where("platform_id = ?", platformID).
		Group("source").
		Scan(&bySource).Error; err != nil {
		return nil, err
	}
	for _, row := range bySource {
		stats.OrdersBySource[row.Source] = row.Count
	}

	type moneyRow struct {
		Revenue   decimal.Decimal
		Discounts decimal.Decimal
	}
	var money moneyRow
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as revenue, COALESCE(SUM(discount_amount), 0) as discounts").
		Where("platform_id = ? AND status IN ?", platformID, soldStatuses).
		Scan(&money).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = money.Revenue
	stats.TotalDiscounts = money.Discounts

	var expenses decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("platform_id = ?", platformID).
		Scan(&expenses).Error; err != nil {
		return nil, err
	}
	if expenses.Valid {
		stats.TotalExpenses = expenses.Decimal
	}

	var balance decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Table("cash_accounts").
		Select("COALESCE(SUM(balance), 0)").
		Where("platform_id = ?", platformID).
		Scan(&balance).Error; err != nil {
		return nil, err
	}
	if balance.Valid {
		stats.CashBalance = balance.Decimal
	}

	type productRow struct {
		ProductCount  int64
		LowStockCount int64
	}
	var products productRow
	if err := r.db.WithContext(ctx).
		Table("products").
		Select(`
			COUNT(*) as product_count,
			COUNT(*) FILTER (WHERE low_stock_threshold > 0 AND stock <= low_stock_threshold) as low_stock_count
		`).
		Where("platform_id = ?", platformID).
		Scan(&products).Error; err != nil {
		return nil, err
	}
	stats.ProductCount = products.ProductCount
	stats.LowStockCount = products.LowStockCount

	return stats, nil
}

// Comprehensive computes the full report for a period
func (r *GormReportRepository) Comprehensive(ctx context.Context, platformID uuid.UUID, from, to time.Time) (*report.Comprehensive, error) {
	result := &report.Comprehensive{
		PeriodStart: from,
		PeriodEnd:   to,
	}

	type totalsRow struct {
		OrderCount   int64
		SoldCount    int64
		Revenue      decimal.Decimal
		DeliveryFees decimal.Decimal
		Discounts    decimal.Decimal
	}
	var totals totalsRow
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select(`
			COUNT(*) as order_count,
			COUNT(*) FILTER (WHERE status IN ('shipped', 'delivered')) as sold_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('shipped', 'delivered')), 0) as revenue,
			COALESCE(SUM(delivery_fee) FILTER (WHERE status IN ('shipped', 'delivered')), 0) as delivery_fees,
			COALESCE(SUM(discount_amount) FILTER (WHERE status IN ('shipped', 'delivered')), 0) as discounts
		`).
		Where("platform_id = ? AND created_at >= ? AND created_at < ?", platformID, from, to).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	result.OrderCount = totals.OrderCount
	result.SoldCount = totals.SoldCount
	result.Revenue = totals.Revenue
	result.DeliveryFees = totals.DeliveryFees
	result.Discounts = totals.Discounts

	// Cost of goods sold from product costs at report time
	var cogs decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("COALESCE(SUM(oi.quantity * p.cost), 0)").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("o.platform_id = ? AND o.status IN ? AND o.created_at >= ? AND o.created_at < ?",
			platformID, soldStatuses, from, to).
		Scan(&cogs).Error; err != nil {
		return nil, err
	}
	result.COGS = decimal.Zero
	if cogs.Valid {
		result.COGS = cogs.Decimal
	}

	var expenses decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("platform_id = ? AND spent_at >= ? AND spent_at < ?", platformID, from, to).
		Scan(&expenses).Error; err != nil {
		return nil, err
	}
	result.Expenses = decimal.Zero
	if expenses.Valid {
		result.Expenses = expenses.Decimal
	}

	result.GrossProfit = result.Revenue.Sub(result.COGS)
	result.NetProfit = result.GrossProfit.Sub(result.Expenses)

	daily, err := r.dailySales(ctx, platformID, from, to)
	if err != nil {
		return nil, err
	}
	result.DailySales = daily

	top, err := r.topProducts(ctx, platformID, from, to)
	if err != nil {
		return nil, err
	}
	result.TopProducts = top

	byGov, err := r.governorateBreakdown(ctx, platformID, from, to)
	if err != nil {
		return nil, err
	}
	result.ByGovernorate = byGov

	return result, nil
}

func (r *GormReportRepository) dailySales(ctx context.Context, platformID uuid.UUID, from, to time.Time) ([]report.DailySales, error) {
	type row struct {
		Date       time.Time
		OrderCount int64
		Revenue    decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as order_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('shipped', 'delivered')), 0) as revenue
		`).
		Where("platform_id = ? AND created_at >= ? AND created_at < ?", platformID, from, to).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	daily := make([]report.DailySales, len(rows))
	for i, row := range rows {
		daily[i] = report.DailySales{
			Date:       row.Date,
			OrderCount: row.OrderCount,
			Revenue:    row.Revenue,
		}
	}
	return daily, nil
}

func (r *GormReportRepository) topProducts(ctx context.Context, platformID uuid.UUID, from, to time.Time) ([]report.TopProduct, error) {
	type row struct {
		ProductID   uuid.UUID
		ProductName string
		SoldQty     int64
		Revenue     decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select(`
			oi.product_id,
			MAX(oi.product_name) as product_name,
			SUM(oi.quantity) as sold_qty,
			COALESCE(SUM(oi.total), 0) as revenue
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.platform_id = ? AND o.status IN ? AND o.created_at >= ? AND o.created_at < ?",
			platformID, soldStatuses, from, to).
		Group("oi.product_id").
		Order("sold_qty DESC").
		Limit(topProductLimit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	top := make([]report.TopProduct, len(rows))
	for i, row := range rows {
		top[i] = report.TopProduct{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			SoldQty:     row.SoldQty,
			Revenue:     row.Revenue,
		}
	}
	return top, nil
}

func (r *GormReportRepository) governorateBreakdown(ctx context.Context, platformID uuid.UUID, from, to time.Time) ([]report.GovernorateBreakdown, error) {
	type row struct {
		Governorate string
		OrderCount  int64
		Revenue     decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&orders.Order{}).
		Select(`
			governorate,
			COUNT(*) as order_count,
			COALESCE(SUM(total_amount) FILTER (WHERE status IN ('shipped', 'delivered')), 0) as revenue
		`).
		Where("platform_id = ? AND created_at >= ? AND created_at < ?", platformID, from, to).
		Group("governorate").
		Order("order_count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make([]report.GovernorateBreakdown, len(rows))
	for i, row := range rows {
		breakdown[i] = report.GovernorateBreakdown{
			Governorate: row.Governorate,
			ArabicName:  valueobject.Governorate(row.Governorate).ArabicName(),
			OrderCount:  row.OrderCount,
			Revenue:     row.Revenue,
		}
	}
	return breakdown, nil
}

// Ensure GormReportRepository implements Repository
var _ report.Repository = (*GormReportRepository)(nil)
