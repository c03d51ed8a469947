package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/inventory"
	"github.com/tajer/backend/internal/domain/shared"
)

// ListFilter narrows the product summary listing. From/To bound the order
// dates counted as sold (YYYY-MM-DD, To inclusive).
type ListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	LowStock   bool       `form:"low_stock"`
	Search     string     `form:"search"`
	From       string     `form:"from"`
	To         string     `form:"to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// ListResult is a page of product summaries with the total row count
type ListResult struct {
	Items    []inventory.ProductSummary `json:"items"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

// InventoryService exposes stock read-models derived from the catalog and
// order history
type InventoryService struct {
	readRepo inventory.ReadRepository
	logger   *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(readRepo inventory.ReadRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		readRepo: readRepo,
		logger:   logger,
	}
}

// List returns per-product stock and sales summaries
func (s *InventoryService) List(ctx context.Context, platformID uuid.UUID, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	query := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.CategoryID != nil {
		query.Filters["category_id"] = *filter.CategoryID
	}
	if filter.LowStock {
		query.Filters["low_stock"] = true
	}
	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PERIOD", "from must be a YYYY-MM-DD date")
		}
		query.Filters["sold_from"] = from
	}
	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PERIOD", "to must be a YYYY-MM-DD date")
		}
		query.Filters["sold_to"] = to.AddDate(0, 0, 1)
	}

	items, total, err := s.readRepo.ProductSummaries(ctx, platformID, query)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns the summary for a single product
func (s *InventoryService) Get(ctx context.Context, platformID, productID uuid.UUID) (*inventory.ProductSummary, error) {
	return s.readRepo.ProductSummary(ctx, platformID, productID)
}

// Overview returns platform-wide stock totals
func (s *InventoryService) Overview(ctx context.Context, platformID uuid.UUID) (*inventory.Overview, error) {
	return s.readRepo.Overview(ctx, platformID)
}
