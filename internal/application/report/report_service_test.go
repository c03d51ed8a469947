package report

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

	"github.com/tajer/backend/internal/domain/report"
	"github.com/tajer/backend/internal/domain/shared"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) DashboardStats(ctx context.Context, platformID uuid.UUID) (*report.DashboardStats, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardStats), args.Error(1)
}

func (m *MockReportRepository) Comprehensive(ctx context.Context, platformID uuid.UUID, from, to time.Time) (*report.Comprehensive, error) {
	args := m.Called(ctx, platformID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Comprehensive), args.Error(1)
}

var testPlatformID = uuid.New()

func TestReportService_Dashboard(t *testing.T) {
	t.Run("stats computed without cache", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo, nil, zap.NewNop())
		ctx := context.Background()

		stats := &report.DashboardStats{
			TotalOrders:  12,
			SoldOrders:   8,
			TotalRevenue: decimal.NewFromInt(200000),
		}
		repo.On("DashboardStats", ctx, testPlatformID).Return(stats, nil)

		result, err := service.Dashboard(ctx, testPlatformID)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), result.TotalOrders)
		assert.True(t, decimal.NewFromInt(200000).Equal(result.TotalRevenue))
	})

	t.Run("repository error propagated", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo, nil, zap.NewNop())
		ctx := context.Background()

		repo.On("DashboardStats", ctx, testPlatformID).Return(nil, errors.New("db down"))

		result, err := service.Dashboard(ctx, testPlatformID)

		assert.Nil(t, result)
		assert.Error(t, err)
	})
}

func TestReportService_Comprehensive(t *testing.T) {
	t.Run("period bounds parsed and to made exclusive", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo, nil, zap.NewNop())
		ctx := context.Background()

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) // Jan 31 inclusive
		expected := &report.Comprehensive{PeriodStart: from, PeriodEnd: to}
		repo.On("Comprehensive", ctx, testPlatformID, from, to).Return(expected, nil)

		result, err := service.Comprehensive(ctx, testPlatformID, PeriodRequest{
			From: "2025-01-01",
			To:   "2025-01-31",
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		repo.AssertExpectations(t)
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo, nil, zap.NewNop())
		ctx := context.Background()

		result, err := service.Comprehensive(ctx, testPlatformID, PeriodRequest{
			From: "January 1st",
			To:   "2025-01-31",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
	})

	t.Run("inverted period rejected", func(t *testing.T) {
		repo := new(MockReportRepository)
		service := NewReportService(repo, nil, zap.NewNop())
		ctx := context.Background()

		result, err := service.Comprehensive(ctx, testPlatformID, PeriodRequest{
			From: "2025-02-01",
			To:   "2025-01-01",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
		repo.AssertNotCalled(t, "Comprehensive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
