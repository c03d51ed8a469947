package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/identity"
	"github.com/tajer/backend/internal/domain/orders"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/infrastructure/notification"
)

// MockPlatformRepository mocks identity.PlatformRepository
type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Platform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindBySubdomain(ctx context.Context, subdomain string) (*identity.Platform, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Platform, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindExpiring(ctx context.Context, cutoff time.Time) ([]identity.Platform, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Platform), args.Error(1)
}

func (m *MockPlatformRepository) Save(ctx context.Context, platform *identity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) SaveWithLock(ctx context.Context, platform *identity.Platform) error {
	args := m.Called(ctx, platform)
	return args.Error(0)
}

func (m *MockPlatformRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSender records outgoing messages
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var testPlatformID = uuid.New()

func createTestPlatform() *identity.Platform {
	platform, _ := identity.NewPlatform("متجر النور", "alnoor")
	platform.ID = testPlatformID
	return platform
}

func createTestEvent() *orders.OrderCreatedEvent {
	return &orders.OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(orders.EventTypeOrderCreated, "Order", uuid.New(), testPlatformID),
		OrderNumber:     "1001",
		CustomerName:    "Ali Hassan",
		CustomerPhone:   "07700000000",
		Governorate:     "baghdad",
		TotalAmount:     decimal.NewFromInt(25000),
		ItemCount:       2,
		Source:          "manual",
	}
}

func TestOrderCreatedHandler_Handle(t *testing.T) {
	t.Run("sends confirmation to the customer", func(t *testing.T) {
		platformRepo := new(MockPlatformRepository)
		sender := new(MockSender)
		handler := NewOrderCreatedHandler(platformRepo, sender, zap.NewNop())
		event := createTestEvent()

		platformRepo.On("FindByID", mock.Anything, testPlatformID).Return(createTestPlatform(), nil)
		sender.On("Send", mock.Anything, mock.MatchedBy(func(msg notification.Message) bool {
			return msg.To == "07700000000"
		})).Return(nil)

		err := handler.Handle(context.Background(), event)

		assert.NoError(t, err)
		sender.AssertExpectations(t)

		sent := sender.Calls[0].Arguments.Get(1).(notification.Message)
		assert.Contains(t, sent.Body, "Ali Hassan")
		assert.Contains(t, sent.Body, "1001")
		assert.Contains(t, sent.Body, "متجر النور")
		assert.Contains(t, sent.Body, "25000")
	})

	t.Run("send failure is swallowed", func(t *testing.T) {
		platformRepo := new(MockPlatformRepository)
		sender := new(MockSender)
		handler := NewOrderCreatedHandler(platformRepo, sender, zap.NewNop())

		platformRepo.On("FindByID", mock.Anything, testPlatformID).Return(createTestPlatform(), nil)
		sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("gateway timeout"))

		err := handler.Handle(context.Background(), createTestEvent())

		assert.NoError(t, err)
	})

	t.Run("missing platform is swallowed and nothing is sent", func(t *testing.T) {
		platformRepo := new(MockPlatformRepository)
		sender := new(MockSender)
		handler := NewOrderCreatedHandler(platformRepo, sender, zap.NewNop())

		platformRepo.On("FindByID", mock.Anything, testPlatformID).Return(nil, shared.ErrNotFound)

		err := handler.Handle(context.Background(), createTestEvent())

		assert.NoError(t, err)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("ignores events of other types", func(t *testing.T) {
		platformRepo := new(MockPlatformRepository)
		sender := new(MockSender)
		handler := NewOrderCreatedHandler(platformRepo, sender, zap.NewNop())

		statusEvent := &orders.OrderStatusChangedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(orders.EventTypeOrderStatusChanged, "Order", uuid.New(), testPlatformID),
			OrderNumber:     "1001",
			FromStatus:      "pending",
			ToStatus:        "confirmed",
		}

		err := handler.Handle(context.Background(), statusEvent)

		assert.NoError(t, err)
		platformRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestOrderCreatedHandler_EventTypes(t *testing.T) {
	handler := NewOrderCreatedHandler(new(MockPlatformRepository), new(MockSender), zap.NewNop())

	assert.Equal(t, []string{orders.EventTypeOrderCreated}, handler.EventTypes())
}
