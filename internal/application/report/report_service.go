package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/report"
	"github.com/tajer/backend/internal/domain/shared"
	"github.com/tajer/backend/internal/infrastructure/cache"
)

// PeriodRequest bounds a comprehensive report. Dates are inclusive of From
// and exclusive of To.
type PeriodRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// ReportService computes dashboard and periodic reports, caching results
// per platform to keep the aggregation queries off the hot path
type ReportService struct {
	reportRepo report.Repository
	cache      *cache.ReportCache
	logger     *zap.Logger
}

// NewReportService creates a new report service. The cache is optional;
// when nil every call hits the database.
func NewReportService(reportRepo report.Repository, reportCache *cache.ReportCache, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      reportCache,
		logger:     logger,
	}
}

// Dashboard returns the live dashboard stats for a platform
func (s *ReportService) Dashboard(ctx context.Context, platformID uuid.UUID) (*report.DashboardStats, error) {
	cacheKey := platformID.String() + ":dashboard"

	if s.cache != nil {
		var cached report.DashboardStats
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Report cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	stats, err := s.reportRepo.DashboardStats(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats); err != nil {
			s.logger.Warn("Report cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return stats, nil
}

// Comprehensive returns the full report for a period
func (s *ReportService) Comprehensive(ctx context.Context, platformID uuid.UUID, req PeriodRequest) (*report.Comprehensive, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "from must be a YYYY-MM-DD date")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "to must be a YYYY-MM-DD date")
	}
	// To is inclusive as a date, so the query bound is the next midnight
	to = to.AddDate(0, 0, 1)
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "to must not be before from")
	}

	cacheKey := fmt.Sprintf("%s:comprehensive:%s:%s", platformID, req.From, req.To)

	if s.cache != nil {
		var cached report.Comprehensive
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Report cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	result, err := s.reportRepo.Comprehensive(ctx, platformID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Warn("Report cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return result, nil
}

// Invalidate drops cached reports for a platform. Called when orders,
// expenses or cash movements change the underlying figures.
func (s *ReportService) Invalidate(ctx context.Context, platformID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePlatform(ctx, platformID.String()); err != nil {
		s.logger.Warn("Report cache invalidation failed",
			zap.String("platform_id", platformID.String()),
			zap.Error(err))
	}
}
