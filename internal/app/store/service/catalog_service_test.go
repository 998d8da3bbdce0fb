package service

import (
	"context"
	"errors"
	"testing"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/repository/mocks"
	"storetrack/internal/app/store/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (*CatalogService, *mocks.MockCategoryRepository, *mocks.MockProductRepository, *mocks.MockSupplierRepository, *mocks.MockCategoryCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	supplierRepo := new(mocks.MockSupplierRepository)
	cache := new(mocks.MockCategoryCache)

	svc := NewCatalogService(categoryRepo, productRepo, supplierRepo, cache)

	return svc, categoryRepo, productRepo, supplierRepo, cache
}

// ==================== Category Tests ====================

func TestCatalogService_CreateCategory_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCatalogService()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	category, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Jeans"})

	require.NoError(t, err)
	assert.Equal(t, "Jeans", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)
	cache.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_CacheErrorIgnored(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCatalogService()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(errors.New("redis down"))

	category, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Jeans"})

	// Категория создана в БД, ошибка кеша не отменяет операцию
	require.NoError(t, err)
	assert.NotNil(t, category)
}

func TestCatalogService_GetAllCategories_CacheHit(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCatalogService()

	cached := []entity.Category{{ID: uuid.New(), Name: "Jeans"}}
	cache.On("GetCategories", ctx).Return(cached, nil)

	categories, err := svc.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, categories)
	categoryRepo.AssertNotCalled(t, "GetAll")
}

func TestCatalogService_GetAllCategories_CacheMissLoadsAndCaches(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, cache := newCatalogService()

	fromDB := []entity.Category{{ID: uuid.New(), Name: "Shirts"}}
	cache.On("GetCategories", ctx).Return(nil, nil)
	categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	cache.On("SetCategories", ctx, fromDB, util.CategoriesCacheTTL).Return(nil)

	categories, err := svc.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, fromDB, categories)
	cache.AssertExpectations(t)
}

func TestCatalogService_DeleteCategory_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, _, _, _ := newCatalogService()

	id := uuid.New()
	categoryRepo.On("Delete", ctx, id).Return(repository.ErrCategoryNotFound)

	err := svc.DeleteCategory(ctx, id)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

// ==================== Product Tests ====================

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, productRepo, _, _ := newCatalogService()

	category := &entity.Category{ID: uuid.New(), Name: "Jeans"}
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	req := &entity.CreateProductRequest{
		Name:          "Blue Jeans",
		CategoryID:    category.ID,
		Price:         49.90,
		StockQuantity: 15,
	}

	product, err := svc.CreateProduct(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "Blue Jeans", product.Name)
	assert.Equal(t, 15, product.StockQuantity)
	assert.Equal(t, "49.9", product.Price.String())
}

func TestCatalogService_CreateProduct_CategoryNotFound(t *testing.T) {
	ctx := context.Background()
	svc, categoryRepo, productRepo, _, _ := newCatalogService()

	categoryID := uuid.New()
	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	req := &entity.CreateProductRequest{
		Name:       "Blue Jeans",
		CategoryID: categoryID,
		Price:      49.90,
	}

	product, err := svc.CreateProduct(ctx, req)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	productRepo.AssertNotCalled(t, "Create")
}

func TestCatalogService_UpdateProduct_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, productRepo, _, _ := newCatalogService()

	existing := newTestProduct()
	existing.Name = "Old Name"

	productRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "New Name" && p.CategoryID == existing.CategoryID
	})).Return(nil)

	req := &entity.UpdateProductRequest{Name: "New Name"}

	product, err := svc.UpdateProduct(ctx, existing.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "New Name", product.Name)
	productRepo.AssertExpectations(t)
}

// ==================== Supplier Tests ====================

func TestCatalogService_CreateSupplier_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, _, supplierRepo, _ := newCatalogService()

	supplierRepo.On("Create", ctx, mock.AnythingOfType("*entity.Supplier")).Return(nil)

	req := &entity.CreateSupplierRequest{
		Name:          "Textile Group",
		ContactPerson: "Olga Ivanova",
		Phone:         "+7 900 000-00-00",
		Email:         "sales@textile.example",
		Address:       "Moscow",
	}

	supplier, err := svc.CreateSupplier(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "Textile Group", supplier.Name)
	assert.NotEqual(t, uuid.Nil, supplier.ID)
}

func TestCatalogService_GetSupplier_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, supplierRepo, _ := newCatalogService()

	id := uuid.New()
	supplierRepo.On("GetByID", ctx, id).Return(nil, repository.ErrSupplierNotFound)

	supplier, err := svc.GetSupplier(ctx, id)

	assert.Nil(t, supplier)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
