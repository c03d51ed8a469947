package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a product with optional offers and variants
func (s *ProductService) Create(ctx context.Context, platformID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForPlatform(ctx, platformID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
		}
	}

	product, err := catalog.NewProduct(platformID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if !req.Cost.IsZero() {
		if err := product.SetPricing(req.Price, req.Cost); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)

	if len(req.Offers) > 0 {
		if err := product.SetOffers(toDomainOffers(req.Offers)); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold > 0 {
		if err := product.SetLowStockThreshold(req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Stock > 0 {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	for _, item := range req.Variants {
		variant, err := catalog.NewProductVariant(product.ID, catalog.VariantKind(item.Kind), item.Name)
		if err != nil {
			return nil, err
		}
		variant.ImageKey = item.ImageKey
		variant.SortOrder = item.SortOrder
		product.Variants = append(product.Variants, *variant)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Get retrieves a product by ID within a platform
func (s *ProductService) Get(ctx context.Context, platformID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List lists products for a platform
func (s *ProductService) List(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, err := s.productRepo.FindAllForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// ListPublic lists active products for the storefront
func (s *ProductService) ListPublic(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]PublicProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Filters == nil {
		filter.Filters = map[string]interface{}{}
	}
	filter.Filters["status"] = catalog.ProductStatusActive

	products, err := s.productRepo.FindAllForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForPlatform(ctx, platformID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PublicProductResponse, len(products))
	for i := range products {
		responses[i] = ToPublicProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update changes a product's basic fields and pricing
func (s *ProductService) Update(ctx context.Context, platformID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForPlatform(ctx, platformID, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
		}
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetPricing(req.Price, req.Cost); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetOffers replaces a product's structured price offers
func (s *ProductService) SetOffers(ctx context.Context, platformID, productID uuid.UUID, req SetOffersRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetOffers(toDomainOffers(req.Offers)); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetStock sets the recorded stock level and optionally the low-stock threshold
func (s *ProductService) SetStock(ctx context.Context, platformID, productID uuid.UUID, req SetStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}

	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// ReplaceVariants replaces all variants of one kind on a product
func (s *ProductService) ReplaceVariants(ctx context.Context, platformID, productID uuid.UUID, req ReplaceVariantsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}

	kind := catalog.VariantKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_VARIANT_KIND", "Unknown variant kind")
	}

	kept := make([]catalog.ProductVariant, 0, len(product.Variants))
	for _, v := range product.Variants {
		if v.Kind != kind {
			kept = append(kept, v)
		}
	}
	for _, item := range req.Variants {
		variant, err := catalog.NewProductVariant(product.ID, kind, item.Name)
		if err != nil {
			return nil, err
		}
		variant.ImageKey = item.ImageKey
		variant.SortOrder = item.SortOrder
		kept = append(kept, *variant)
	}
	product.Variants = kept

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product visible on the storefront
func (s *ProductService) Activate(ctx context.Context, platformID, productID uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, platformID, productID, true)
}

// Deactivate hides a product from the storefront
func (s *ProductService) Deactivate(ctx context.Context, platformID, productID uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, platformID, productID, false)
}

func (s *ProductService) setStatus(ctx context.Context, platformID, productID uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForPlatform(ctx, platformID, productID)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product. Products referenced by order items cannot be
// deleted; deactivate them instead so order history keeps resolving.
func (s *ProductService) Delete(ctx context.Context, platformID, productID uuid.UUID) error {
	refs, err := s.productRepo.CountOrderReferences(ctx, platformID, productID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.NewDomainError("PRODUCT_IN_USE", "Product is referenced by existing orders; deactivate it instead")
	}
	return s.productRepo.DeleteForPlatform(ctx, platformID, productID)
}

// LowStock lists active products at or below their low-stock threshold
func (s *ProductService) LowStock(ctx context.Context, platformID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, platformID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish product event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	product.ClearDomainEvents()
}
