package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
)

// OrderSettlementHandler books cash when orders settle: a delivered order
// records the collected payment, a refunded order records the outflow.
// Booking is idempotent per order and transaction type, so a redelivered
// event does not double-count.
type OrderSettlementHandler struct {
	orderRepo         orders.OrderRepository
	accountingService *AccountingService
	logger            *zap.Logger
}

// NewOrderSettlementHandler creates a new handler for order settlement events
func NewOrderSettlementHandler(
	orderRepo orders.OrderRepository,
	accountingService *AccountingService,
	logger *zap.Logger,
) *OrderSettlementHandler {
	return &OrderSettlementHandler{
		orderRepo:         orderRepo,
		accountingService: accountingService,
		logger:            logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderSettlementHandler) EventTypes() []string {
	return []string{orders.EventTypeOrderDelivered, orders.EventTypeOrderRefunded}
}

// Handle books the cash movement for a settled order
func (h *OrderSettlementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	statusEvent, ok := event.(*orders.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	order, err := h.orderRepo.FindByIDForPlatform(ctx, statusEvent.PlatformID(), statusEvent.AggregateID())
	if err != nil {
		h.logger.Error("failed to load order for settlement",
			zap.String("order_id", statusEvent.AggregateID().String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to load order: %w", err)
	}

	switch event.EventType() {
	case orders.EventTypeOrderDelivered:
		description := fmt.Sprintf("استلام مبلغ الطلب %s", order.OrderNumber)
		_, err = h.accountingService.BookOrderPayment(ctx, order.PlatformID, order.ID, order.TotalAmount, description)
	case orders.EventTypeOrderRefunded:
		description := fmt.Sprintf("استرجاع مبلغ الطلب %s", order.OrderNumber)
		_, err = h.accountingService.BookOrderRefund(ctx, order.PlatformID, order.ID, order.TotalAmount, description)
	default:
		return nil
	}

	if err != nil {
		h.logger.Error("failed to book order settlement",
			zap.String("order_number", order.OrderNumber),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("order settlement booked",
		zap.String("order_number", order.OrderNumber),
		zap.String("event_type", event.EventType()),
	)
	return nil
}

// Ensure OrderSettlementHandler implements EventHandler
var _ shared.EventHandler = (*OrderSettlementHandler)(nil)
