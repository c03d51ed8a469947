package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/infrastructure/notification"
)

// OrderCreatedHandler sends the customer a WhatsApp confirmation when an
// order is submitted. Delivery is best-effort: a send failure is logged
// and never propagated, the order stands either way.
type OrderCreatedHandler struct {
	platformRepo identity.PlatformRepository
	sender       notification.Sender
	logger       *zap.Logger
}

// NewOrderCreatedHandler creates an order confirmation handler
func NewOrderCreatedHandler(platformRepo identity.PlatformRepository, sender notification.Sender, logger *zap.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{
		platformRepo: platformRepo,
		sender:       sender,
		logger:       logger,
	}
}

// EventTypes returns the order submission event
func (h *OrderCreatedHandler) EventTypes() []string {
	return []string{orders.EventTypeOrderCreated}
}

// Handle composes and sends the confirmation message
func (h *OrderCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*orders.OrderCreatedEvent)
	if !ok {
		return nil
	}

	platform, err := h.platformRepo.FindByID(ctx, createdEvent.PlatformID())
	if err != nil {
		h.logger.Warn("Failed to load platform for order confirmation",
			zap.String("platform_id", createdEvent.PlatformID().String()),
			zap.Error(err))
		return nil
	}

	message := notification.Message{
		To:   createdEvent.CustomerPhone,
		Body: confirmationBody(platform.Name, createdEvent),
	}
	if err := h.sender.Send(ctx, message); err != nil {
		h.logger.Warn("Order confirmation message failed",
			zap.String("order_number", createdEvent.OrderNumber),
			zap.String("customer_phone", createdEvent.CustomerPhone),
			zap.Error(err))
		return nil
	}

	h.logger.Info("Order confirmation sent",
		zap.String("order_number", createdEvent.OrderNumber),
		zap.String("customer_phone", createdEvent.CustomerPhone))
	return nil
}

func confirmationBody(platformName string, event *orders.OrderCreatedEvent) string {
	return fmt.Sprintf(
		"مرحباً %s،\nتم استلام طلبك رقم %s من %s.\nالمبلغ الإجمالي: %s دينار.\nسنتواصل معك لتأكيد الطلب قريباً.",
		event.CustomerName,
		event.OrderNumber,
		platformName,
		event.TotalAmount.StringFixed(0),
	)
}

var _ shared.EventHandler = (*OrderCreatedHandler)(nil)
