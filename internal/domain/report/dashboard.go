package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is the at-a-glance read model for a platform's home screen
type DashboardStats struct {
	TotalOrders    int64            `json:"total_orders"`
	PendingOrders  int64            `json:"pending_orders"`
	SoldOrders     int64            `json:"sold_orders"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	TotalDiscounts decimal.Decimal  `json:"total_discounts"`
	TotalExpenses  decimal.Decimal  `json:"total_expenses"`
	CashBalance    decimal.Decimal  `json:"cash_balance"`
	ProductCount   int64            `json:"product_count"`
	LowStockCount  int64            `json:"low_stock_count"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	OrdersBySource map[string]int64 `json:"orders_by_source"`
}

// DailySales is one point of the sales timeline
type DailySales struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopProduct ranks a product by sold quantity within a period
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SoldQty     int64           `json:"sold_qty"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// GovernorateBreakdown counts orders per governorate within a period
type GovernorateBreakdown struct {
	Governorate string          `json:"governorate"`
	ArabicName  string          `json:"arabic_name"`
	OrderCount  int64           `json:"order_count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Comprehensive is the full periodic report: sales, costs, profit and the
// breakdowns behind them. Revenue counts shipped and delivered orders only.
type Comprehensive struct {
	PeriodStart   time.Time              `json:"period_start"`
	PeriodEnd     time.Time              `json:"period_end"`
	OrderCount    int64                  `json:"order_count"`
	SoldCount     int64                  `json:"sold_count"`
	Revenue       decimal.Decimal        `json:"revenue"`
	DeliveryFees  decimal.Decimal        `json:"delivery_fees"`
	Discounts     decimal.Decimal        `json:"discounts"`
	COGS          decimal.Decimal        `json:"cogs"`
	Expenses      decimal.Decimal        `json:"expenses"`
	GrossProfit   decimal.Decimal        `json:"gross_profit"`
	NetProfit     decimal.Decimal        `json:"net_profit"`
	DailySales    []DailySales           `json:"daily_sales"`
	TopProducts   []TopProduct           `json:"top_products"`
	ByGovernorate []GovernorateBreakdown `json:"by_governorate"`
}

// Repository defines the aggregation queries behind reports
type Repository interface {
	// DashboardStats computes the dashboard read model
	DashboardStats(ctx context.Context, platformID uuid.UUID) (*DashboardStats, error)

	// Comprehensive computes the full report for a period
	Comprehensive(ctx context.Context, platformID uuid.UUID, from, to time.Time) (*Comprehensive, error)
}
