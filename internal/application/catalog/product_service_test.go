package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tajer/backend/internal/domain/catalog"
	"github.com/tajer/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, platformID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForPlatform(ctx context.Context, platformID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, platformID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, platformID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, platformID, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, platformID, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, platformID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	args := m.Called(ctx, platformID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForPlatform(ctx context.Context, platformID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, platformID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountOrderReferences(ctx context.Context, platformID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, platformID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForPlatform(ctx context.Context, platformID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, platformID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForPlatform(ctx context.Context, platformID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForPlatform(ctx context.Context, platformID, id uuid.UUID) error {
	args := m.Called(ctx, platformID, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, platformID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, platformID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	testPlatformID = uuid.New()
	testProductID  = uuid.New()
	testCategoryID = uuid.New()
)

func newTestProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewProductService(productRepo, categoryRepo, zap.NewNop())
	return service, productRepo, categoryRepo
}

func createTestProduct() *catalog.Product {
	product, _ := catalog.NewProduct(testPlatformID, "Test Product", decimal.NewFromInt(5000))
	product.ID = testProductID
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("create product successfully", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, testPlatformID, CreateProductRequest{
			Name:  "Hair Dryer",
			Price: decimal.NewFromInt(25000),
			Stock: 10,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "Hair Dryer", result.Name)
		assert.Equal(t, 10, result.Stock)
		assert.Equal(t, "active", result.Status)
		productRepo.AssertExpectations(t)
	})

	t.Run("create product with offers and variants", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		result, err := service.Create(ctx, testPlatformID, CreateProductRequest{
			Name:  "Hair Dryer",
			Price: decimal.NewFromInt(25000),
			Offers: []PriceOfferInput{
				{Quantity: 1, Price: decimal.NewFromInt(25000), Label: "1pc", IsDefault: true},
				{Quantity: 2, Price: decimal.NewFromInt(45000), Label: "2pcs"},
			},
			Variants: []CreateVariantItem{
				{Kind: "color", Name: "Black"},
				{Kind: "color", Name: "White"},
				{Kind: "size", Name: "Large"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, result.Offers, 2)
		assert.Len(t, result.Variants, 3)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		service, productRepo, categoryRepo := newTestProductService()
		ctx := context.Background()

		categoryRepo.On("FindByIDForPlatform", ctx, testPlatformID, testCategoryID).Return(nil, shared.ErrNotFound)

		categoryID := testCategoryID
		result, err := service.Create(ctx, testPlatformID, CreateProductRequest{
			Name:       "Hair Dryer",
			Price:      decimal.NewFromInt(25000),
			CategoryID: &categoryID,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		service, _, _ := newTestProductService()
		ctx := context.Background()

		result, err := service.Create(ctx, testPlatformID, CreateProductRequest{
			Name:  "Hair Dryer",
			Price: decimal.NewFromInt(-1),
		})

		assert.Nil(t, result)
		assert.Error(t, err)
	})
}

func TestProductService_SetOffers(t *testing.T) {
	t.Run("offers replaced", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		result, err := service.SetOffers(ctx, testPlatformID, testProductID, SetOffersRequest{
			Offers: []PriceOfferInput{
				{Quantity: 3, Price: decimal.NewFromInt(12000), Label: "3pcs"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, result.Offers, 1)
		assert.Equal(t, "3pcs", result.Offers[0].Label)
	})

	t.Run("duplicate labels rejected", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)

		result, err := service.SetOffers(ctx, testPlatformID, testProductID, SetOffersRequest{
			Offers: []PriceOfferInput{
				{Quantity: 1, Price: decimal.NewFromInt(5000), Label: "deal"},
				{Quantity: 2, Price: decimal.NewFromInt(9000), Label: "deal"},
			},
		})

		assert.Nil(t, result)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestProductService_SetStock(t *testing.T) {
	t.Run("stock and threshold updated", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		threshold := 5
		result, err := service.SetStock(ctx, testPlatformID, testProductID, SetStockRequest{
			Stock:             3,
			LowStockThreshold: &threshold,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Stock)
		assert.Equal(t, 5, result.LowStockThreshold)
		assert.True(t, result.IsLowStock)
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)

		result, err := service.SetStock(ctx, testPlatformID, testProductID, SetStockRequest{Stock: -1})

		assert.Nil(t, result)
		assert.Error(t, err)
	})
}

func TestProductService_ReplaceVariants(t *testing.T) {
	t.Run("replaces only the requested kind", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		black, _ := catalog.NewProductVariant(product.ID, catalog.VariantKindColor, "Black")
		large, _ := catalog.NewProductVariant(product.ID, catalog.VariantKindSize, "Large")
		product.Variants = []catalog.ProductVariant{*black, *large}

		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		result, err := service.ReplaceVariants(ctx, testPlatformID, testProductID, ReplaceVariantsRequest{
			Kind: "color",
			Variants: []CreateVariantItem{
				{Kind: "color", Name: "Red"},
				{Kind: "color", Name: "Blue"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, result.Variants, 3) // Large kept, Black replaced by Red/Blue

		names := make([]string, 0, 3)
		for _, v := range result.Variants {
			names = append(names, v.Name)
		}
		assert.Contains(t, names, "Large")
		assert.Contains(t, names, "Red")
		assert.NotContains(t, names, "Black")
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)

		result, err := service.ReplaceVariants(ctx, testPlatformID, testProductID, ReplaceVariantsRequest{
			Kind: "flavor",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_VARIANT_KIND", domainErr.Code)
	})
}

func TestProductService_StatusChanges(t *testing.T) {
	t.Run("deactivate hides product", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		product := createTestProduct()
		productRepo.On("FindByIDForPlatform", ctx, testPlatformID, testProductID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		result, err := service.Deactivate(ctx, testPlatformID, testProductID)

		assert.NoError(t, err)
		assert.Equal(t, "inactive", result.Status)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("unreferenced product is deleted", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		productRepo.On("CountOrderReferences", ctx, testPlatformID, testProductID).Return(int64(0), nil)
		productRepo.On("DeleteForPlatform", ctx, testPlatformID, testProductID).Return(nil)

		err := service.Delete(ctx, testPlatformID, testProductID)

		assert.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("product referenced by orders is kept", func(t *testing.T) {
		service, productRepo, _ := newTestProductService()
		ctx := context.Background()

		productRepo.On("CountOrderReferences", ctx, testPlatformID, testProductID).Return(int64(3), nil)

		err := service.Delete(ctx, testPlatformID, testProductID)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_IN_USE", domainErr.Code)
		productRepo.AssertNotCalled(t, "DeleteForPlatform", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestToPublicProductResponse(t *testing.T) {
	t.Run("default offer surfaced for the storefront", func(t *testing.T) {
		product := createTestProduct()
		err := product.SetOffers(catalog.PriceOffers{
			{Quantity: 2, Price: decimal.NewFromInt(9000), Label: "عرض 2"},
			{Quantity: 3, Price: decimal.NewFromInt(12000), Label: "عرض 3", IsDefault: true},
		})
		assert.NoError(t, err)

		response := ToPublicProductResponse(product)

		assert.NotNil(t, response.DefaultOffer)
		assert.Equal(t, "عرض 3", response.DefaultOffer.Label)
		assert.Equal(t, 3, response.DefaultOffer.Quantity)
		assert.True(t, response.DefaultOffer.IsDefault)
	})

	t.Run("no default offer yields nil", func(t *testing.T) {
		product := createTestProduct()

		response := ToPublicProductResponse(product)

		assert.Nil(t, response.DefaultOffer)
		assert.Empty(t, response.Offers)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("category in use cannot be deleted", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, zap.NewNop())
		ctx := context.Background()

		categoryRepo.On("CountProducts", ctx, testPlatformID, testCategoryID).Return(int64(4), nil)

		err := service.Delete(ctx, testPlatformID, testCategoryID)

		var domainErr *shared.DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
		categoryRepo.AssertNotCalled(t, "DeleteForPlatform", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unused category deleted", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, zap.NewNop())
		ctx := context.Background()

		categoryRepo.On("CountProducts", ctx, testPlatformID, testCategoryID).Return(int64(0), nil)
		categoryRepo.On("DeleteForPlatform", ctx, testPlatformID, testCategoryID).Return(nil)

		err := service.Delete(ctx, testPlatformID, testCategoryID)

		assert.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})
}
