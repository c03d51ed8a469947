package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/accounting"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
)

func TestCacheInvalidationHandler_EventTypes(t *testing.T) {
	handler := NewCacheInvalidationHandler(NewReportService(new(MockReportRepository), nil, zap.NewNop()), zap.NewNop())

	types := handler.EventTypes()

	// Delivered and refunded transitions carry their own event types, not
	// the generic status change, and they are exactly the ones that move
	// revenue. The subscription list must cover all of them.
	assert.Contains(t, types, orders.EventTypeOrderCreated)
	assert.Contains(t, types, orders.EventTypeOrderStatusChanged)
	assert.Contains(t, types, orders.EventTypeOrderDelivered)
	assert.Contains(t, types, orders.EventTypeOrderRefunded)
	assert.Contains(t, types, accounting.EventTypeCashBalanceChanged)
	assert.Contains(t, types, accounting.EventTypeExpenseRecorded)
}

func TestCacheInvalidationHandler_Handle(t *testing.T) {
	t.Run("never fails the publishing side", func(t *testing.T) {
		handler := NewCacheInvalidationHandler(NewReportService(new(MockReportRepository), nil, zap.NewNop()), zap.NewNop())

		event := &orders.OrderStatusChangedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(orders.EventTypeOrderDelivered, "Order", uuid.New(), testPlatformID),
			FromStatus:      "shipped",
			ToStatus:        "delivered",
		}

		err := handler.Handle(context.Background(), event)

		assert.NoError(t, err)
	})
}
