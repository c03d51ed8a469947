package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
)

// CacheInvalidationHandler drops cached reports whenever an event changes
// the figures behind them
type CacheInvalidationHandler struct {
	reportService *ReportService
	logger        *zap.Logger
}

// NewCacheInvalidationHandler creates a cache invalidation handler
func NewCacheInvalidationHandler(reportService *ReportService, logger *zap.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// EventTypes lists the events that stale the report cache
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{
		orders.EventTypeOrderCreated,
		orders.EventTypeOrderStatusChanged,
		orders.EventTypeOrderDelivered,
		orders.EventTypeOrderRefunded,
		accounting.EventTypeCashBalanceChanged,
		accounting.EventTypeExpenseRecorded,
	}
}

// Handle invalidates the platform's cached reports
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.reportService.Invalidate(ctx, event.PlatformID())
	return nil
}

var _ shared.EventHandler = (*CacheInvalidationHandler)(nil)
