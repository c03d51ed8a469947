package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tajer/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu       sync.Mutex
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.received = append(h.received, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "order", uuid.New(), uuid.New())
	return &e
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers event to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("order.created"))

		assert.NoError(t, err)
		assert.Equal(t, 1, handler.count())
	})

	t.Run("does not deliver unrelated event types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(), newTestEvent("product.created"))

		assert.NoError(t, err)
		assert.Equal(t, 0, handler.count())
	})

	t.Run("delivers to all handlers of the same type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		first := &recordingHandler{types: []string{"order.status_changed"}}
		second := &recordingHandler{types: []string{"order.status_changed"}}
		bus.Subscribe(first)
		bus.Subscribe(second)

		err := bus.Publish(context.Background(), newTestEvent("order.status_changed"))

		assert.NoError(t, err)
		assert.Equal(t, 1, first.count())
		assert.Equal(t, 1, second.count())
	})

	t.Run("explicit subscription types override handler types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(handler, "product.created")

		bus.Publish(context.Background(), newTestEvent("order.created"))
		assert.Equal(t, 0, handler.count())

		bus.Publish(context.Background(), newTestEvent("product.created"))
		assert.Equal(t, 1, handler.count())
	})

	t.Run("publishes multiple events in order", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order.created", "order.status_changed"}}
		bus.Subscribe(handler)

		err := bus.Publish(context.Background(),
			newTestEvent("order.created"),
			newTestEvent("order.status_changed"),
		)

		assert.NoError(t, err)
		assert.Equal(t, 2, handler.count())
		assert.Equal(t, "order.created", handler.received[0].EventType())
		assert.Equal(t, "order.status_changed", handler.received[1].EventType())
	})
}

func TestInMemoryEventBus_FailureIsolation(t *testing.T) {
	t.Run("failing handler does not fail publish", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"order.created"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newTestEvent("order.created"))

		assert.NoError(t, err)
		assert.Equal(t, 1, healthy.count())
	})

	t.Run("panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"order.created"}, panics: true}
		healthy := &recordingHandler{types: []string{"order.created"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		assert.NotPanics(t, func() {
			bus.Publish(context.Background(), newTestEvent("order.created"))
		})
		assert.Equal(t, 1, healthy.count())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(handler)

	bus.Publish(context.Background(), newTestEvent("order.created"))
	assert.Equal(t, 1, handler.count())

	bus.Unsubscribe(handler)

	bus.Publish(context.Background(), newTestEvent("order.created"))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	assert.NoError(t, bus.Start(context.Background()))
	assert.NoError(t, bus.Stop(context.Background()))
}
