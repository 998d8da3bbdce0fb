package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lowStockThreshold - порог низкого остатка для сводки и фоновых проверок
const lowStockThreshold = 10

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

// GetByID получает товар по ID вместе с категорией
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetAll получает все товары с категориями, упорядоченные по имени
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).Preload("Category").Order("name ASC").Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// List получает страницу товаров по фильтру, упорядоченных по имени
func (r *productRepository) List(ctx context.Context, f entity.ProductFilter) ([]entity.Product, entity.Pagination, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&entity.Product{}), f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, entity.Pagination{}, err
	}

	pagination, offset := paginate(total, f.Page)

	var products []entity.Product
	err := r.applyFilter(r.db.WithContext(ctx), f).
		Preload("Category").
		Order("name ASC").
		Offset(offset).
		Limit(entity.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, entity.Pagination{}, err
	}

	return products, pagination, nil
}

// Update обновляет товар
// Остаток намеренно не входит в обновляемые поля: им управляет StockRepository
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
		"size":        product.Size,
		"color":       product.Color,
		"price":       product.Price,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Count возвращает общее число товаров
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error
	return count, err
}

// CountLowStock возвращает число товаров с остатком ниже порога
func (r *productRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("stock_quantity < ?", lowStockThreshold).
		Count(&count).Error
	return count, err
}

// FindLowStock возвращает товары с остатком ниже порога,
// от самого низкого остатка к более высокому
func (r *productRepository) FindLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("stock_quantity < ?", lowStockThreshold).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search ищет товары по подстроке в имени товара или имени категории
// без учета регистра
func (r *productRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	pattern := "%" + query + "%"

	var products []entity.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.name ILIKE ? OR categories.name ILIKE ?", pattern, pattern).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) applyFilter(db *gorm.DB, f entity.ProductFilter) *gorm.DB {
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}

	switch f.StockStatus {
	case entity.StockStatusInStock:
		db = db.Where("stock_quantity > ?", 10)
	case entity.StockStatusLowStock:
		db = db.Where("stock_quantity > ? AND stock_quantity < ?", 0, 10)
	case entity.StockStatusOutOfStock:
		db = db.Where("stock_quantity = ?", 0)
	}

	return db
}
