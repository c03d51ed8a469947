package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
)

// StockBelowThresholdHandler surfaces low-stock products in the logs so
// operators can restock before orders start failing. Alerting stays
// advisory; it never blocks the stock update that raised the event.
type StockBelowThresholdHandler struct {
	logger *zap.Logger
}

// NewStockBelowThresholdHandler creates a low stock alert handler
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// EventTypes returns the low stock event
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{catalog.EventTypeStockBelowThreshold}
}

// Handle logs the alert
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	stockEvent, ok := event.(*catalog.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	alertType := "low_stock"
	if stockEvent.Stock <= 0 {
		alertType = "out_of_stock"
	}

	h.logger.Warn("product stock below threshold",
		zap.String("alert_type", alertType),
		zap.String("platform_id", stockEvent.PlatformID().String()),
		zap.String("product_id", stockEvent.AggregateID().String()),
		zap.String("product_name", stockEvent.Name),
		zap.Int("stock", stockEvent.Stock),
		zap.Int("threshold", stockEvent.Threshold),
	)
	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)
