package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/util"
	"storetrack/pkg/logger"
	"storetrack/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService обрабатывает бизнес-логику справочников магазина:
// категории, товары и поставщики
// Список категорий кешируется в Redis, мутации инвалидируют кеш
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	cache        util.CategoryCache
}

// NewCatalogService создает новый сервис справочников с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	cache util.CategoryCache,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		cache:        cache,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// GetCategory получает категорию по ID
// Не использует кеш, так как запрашивается конкретная категория
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из БД и кеширует на час
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		metrics.RedisCacheHits.WithLabelValues("storetrack", "categories").Inc()
		return categories, nil
	}
	metrics.RedisCacheMisses.WithLabelValues("storetrack", "categories").Inc()

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, util.CategoriesCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return nil
}

// === PRODUCTS ===

// CreateProduct создает новый товар
// Начальный остаток задается здесь один раз, дальше остаток
// меняют только продажи и поступления
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Size:          req.Size,
		Color:         req.Color,
		Price:         decimal.NewFromFloat(req.Price),
		StockQuantity: req.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct получает товар по ID вместе с категорией
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts получает страницу товаров с фильтрами
// по категории и статусу остатка
func (s *CatalogService) ListProducts(ctx context.Context, f entity.ProductFilter) (*entity.ProductsReport, error) {
	products, pagination, err := s.productRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &entity.ProductsReport{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// UpdateProduct обновляет атрибуты товара
// Остаток товара через эту операцию не меняется
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.CategoryID != uuid.Nil {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		product.CategoryID = req.CategoryID
	}
	if req.Size != nil {
		product.Size = req.Size
	}
	if req.Color != nil {
		product.Color = req.Color
	}
	if req.Price > 0 {
		product.Price = decimal.NewFromFloat(req.Price)
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct удаляет товар
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// === SUPPLIERS ===

// CreateSupplier создает нового поставщика
func (s *CatalogService) CreateSupplier(ctx context.Context, req *entity.CreateSupplierRequest) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		ID:            uuid.New(),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return supplier, nil
}

// GetSupplier получает поставщика по ID
func (s *CatalogService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return supplier, nil
}

// GetAllSuppliers получает всех поставщиков
func (s *CatalogService) GetAllSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	suppliers, err := s.supplierRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}

	return suppliers, nil
}

// UpdateSupplier обновляет данные поставщика
func (s *CatalogService) UpdateSupplier(ctx context.Context, id uuid.UUID, req *entity.UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.ContactPerson != "" {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}
	if req.Address != "" {
		supplier.Address = req.Address
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return supplier, nil
}

// DeleteSupplier удаляет поставщика
func (s *CatalogService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	return nil
}

// invalidateCategoriesCache сбрасывает кеш списка категорий
// Ошибка кеша не прерывает операцию, данные в БД уже изменены
func (s *CatalogService) invalidateCategoriesCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		metrics.RedisErrors.WithLabelValues("storetrack", "delete").Inc()
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}
