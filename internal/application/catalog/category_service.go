package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
)

// CategoryService handles product category operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a category
func (s *CategoryService) Create(ctx context.Context, platformID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(platformID, req.Name)
	if err != nil {
		return nil, err
	}
	category.SortOrder = req.SortOrder

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// List lists categories for a platform
func (s *CategoryService) List(ctx context.Context, platformID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForPlatform(ctx, platformID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Update renames a category or changes its sort order
func (s *CategoryService) Update(ctx context.Context, platformID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForPlatform(ctx, platformID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. Categories with assigned products cannot be
// deleted; reassign the products first.
func (s *CategoryService) Delete(ctx context.Context, platformID, categoryID uuid.UUID) error {
	count, err := s.categoryRepo.CountProducts(ctx, platformID, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned")
	}

	return s.categoryRepo.DeleteForPlatform(ctx, platformID, categoryID)
}
