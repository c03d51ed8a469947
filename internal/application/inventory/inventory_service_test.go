package inventory

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

	"github.com/tajer/backend/internal/domain/inventory"
	"github.com/tajer/backend/internal/domain/shared"
)

// MockReadRepository mocks inventory.ReadRepository
type MockReadRepository struct {
	mock.Mock
}

func (m *MockReadRepository) ProductSummaries(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]inventory.ProductSummary, int64, error) {
	args := m.Called(ctx, platformID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]inventory.ProductSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockReadRepository) ProductSummary(ctx context.Context, platformID, productID uuid.UUID) (*inventory.ProductSummary, error) {
	args := m.Called(ctx, platformID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ProductSummary), args.Error(1)
}

func (m *MockReadRepository) Overview(ctx context.Context, platformID uuid.UUID) (*inventory.Overview, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Overview), args.Error(1)
}

var testPlatformID = uuid.New()

func createTestSummary() inventory.ProductSummary {
	return inventory.ProductSummary{
		ProductID:         uuid.New(),
		ProductName:       "قميص صيفي",
		Stock:             50,
		SoldQuantity:      12,
		Remaining:         38,
		LowStockThreshold: 5,
		StockValue:        decimal.NewFromInt(250000),
		SoldRevenue:       decimal.NewFromInt(60000),
	}
}

func TestInventoryService_List(t *testing.T) {
	t.Run("returns a page of summaries", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		summaries := []inventory.ProductSummary{createTestSummary(), createTestSummary()}
		readRepo.On("ProductSummaries", mock.Anything, testPlatformID, mock.Anything).
			Return(summaries, int64(2), nil)

		result, err := service.List(context.Background(), testPlatformID, ListFilter{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(2), result.Total)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
	})

	t.Run("normalizes out-of-range pagination", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		readRepo.On("ProductSummaries", mock.Anything, testPlatformID, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]inventory.ProductSummary{}, int64(0), nil)

		result, err := service.List(context.Background(), testPlatformID, ListFilter{Page: 0, PageSize: 500})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
		readRepo.AssertExpectations(t)
	})

	t.Run("forwards category and low stock filters", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		categoryID := uuid.New()
		readRepo.On("ProductSummaries", mock.Anything, testPlatformID, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["category_id"] == categoryID && f.Filters["low_stock"] == true
		})).Return([]inventory.ProductSummary{}, int64(0), nil)

		_, err := service.List(context.Background(), testPlatformID, ListFilter{
			CategoryID: &categoryID,
			LowStock:   true,
			Page:       1,
			PageSize:   20,
		})

		assert.NoError(t, err)
		readRepo.AssertExpectations(t)
	})

	t.Run("date range bounds the sold aggregation", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		readRepo.On("ProductSummaries", mock.Anything, testPlatformID, mock.MatchedBy(func(f shared.Filter) bool {
			from, fromOK := f.Filters["sold_from"].(time.Time)
			to, toOK := f.Filters["sold_to"].(time.Time)
			return fromOK && toOK &&
				from.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				to.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		})).Return([]inventory.ProductSummary{}, int64(0), nil)

		_, err := service.List(context.Background(), testPlatformID, ListFilter{
			From: "2025-01-01",
			To:   "2025-01-31",
			Page: 1, PageSize: 20,
		})

		assert.NoError(t, err)
		readRepo.AssertExpectations(t)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		_, err := service.List(context.Background(), testPlatformID, ListFilter{From: "January 1st"})

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
		readRepo.AssertNotCalled(t, "ProductSummaries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		readRepo := new(MockReadRepository)
		service := NewInventoryService(readRepo, zap.NewNop())

		readRepo.On("ProductSummaries", mock.Anything, testPlatformID, mock.Anything).
			Return(nil, int64(0), errors.New("query failed"))

		result, err := service.List(context.Background(), testPlatformID, ListFilter{Page: 1, PageSize: 20})

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestInventoryService_Get(t *testing.T) {
	readRepo := new(MockReadRepository)
	service := NewInventoryService(readRepo, zap.NewNop())

	summary := createTestSummary()
	readRepo.On("ProductSummary", mock.Anything, testPlatformID, summary.ProductID).
		Return(&summary, nil)

	result, err := service.Get(context.Background(), testPlatformID, summary.ProductID)

	assert.NoError(t, err)
	assert.Equal(t, summary.ProductName, result.ProductName)
	assert.Equal(t, 38, result.Remaining)
}

func TestInventoryService_Overview(t *testing.T) {
	readRepo := new(MockReadRepository)
	service := NewInventoryService(readRepo, zap.NewNop())

	overview := &inventory.Overview{
		TotalProducts:   10,
		TotalStock:      340,
		TotalSold:       85,
		LowStockCount:   2,
		OutOfStockCount: 1,
		TotalStockValue: decimal.NewFromInt(1700000),
	}
	readRepo.On("Overview", mock.Anything, testPlatformID).Return(overview, nil)

	result, err := service.Overview(context.Background(), testPlatformID)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), result.TotalProducts)
	assert.Equal(t, int64(2), result.LowStockCount)
}
