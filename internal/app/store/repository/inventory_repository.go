package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository создает новый репозиторий поступлений
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// GetByID получает поступление по ID вместе с товаром и поставщиком
func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Inventory, error) {
	var inv entity.Inventory
	result := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Supplier").
		First(&inv, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, result.Error
	}

	return &inv, nil
}

// List получает страницу поступлений по фильтру, от новых к старым
func (r *inventoryRepository) List(ctx context.Context, f entity.InventoryFilter) ([]entity.Inventory, entity.Pagination, error) {
	total, err := r.Count(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, err
	}

	pagination, offset := paginate(total, f.Page)

	var inventories []entity.Inventory
	err = r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).
		Preload("Product.Category").
		Preload("Supplier").
		Order("inventories.date_received DESC").
		Offset(offset).
		Limit(entity.PageSize).
		Find(&inventories).Error
	if err != nil {
		return nil, entity.Pagination{}, err
	}

	return inventories, pagination, nil
}

// ListAll получает все поступления под фильтром без пагинации
// Используется для CSV выгрузок
func (r *inventoryRepository) ListAll(ctx context.Context, f entity.InventoryFilter) ([]entity.Inventory, error) {
	var inventories []entity.Inventory
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).
		Preload("Product.Category").
		Preload("Supplier").
		Order("inventories.date_received DESC").
		Find(&inventories).Error
	if err != nil {
		return nil, err
	}

	return inventories, nil
}

// Count возвращает число поступлений под фильтром
func (r *inventoryRepository) Count(ctx context.Context, f entity.InventoryFilter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).Count(&count).Error
	return count, err
}

// CountDistinctProducts возвращает число различных товаров в выборке
func (r *inventoryRepository) CountDistinctProducts(ctx context.Context, f entity.InventoryFilter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).
		Select("COUNT(DISTINCT inventories.product_id)").
		Scan(&count).Error
	return count, err
}

// SumQuantity возвращает суммарное количество единиц в выборке
func (r *inventoryRepository) SumQuantity(ctx context.Context, f entity.InventoryFilter) (int64, error) {
	var sum int64
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).
		Select("COALESCE(SUM(inventories.quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

// SumValue возвращает суммарную стоимость выборки
// (quantity * unit_price по каждой строке), 0 для пустой выборки
func (r *inventoryRepository) SumValue(ctx context.Context, f entity.InventoryFilter) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Inventory{}), f).
		Select("COALESCE(SUM(inventories.quantity * inventories.unit_price), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// filtered накладывает все условия фильтра на запрос
func (r *inventoryRepository) filtered(db *gorm.DB, f entity.InventoryFilter) *gorm.DB {
	db = applyDateFilter(db, "inventories.date_received", f.DateRange, f.StartDate, f.EndDate, f.Now)

	if f.SupplierID != nil {
		db = db.Where("inventories.supplier_id = ?", *f.SupplierID)
	}

	if f.CategoryID != nil {
		db = db.Joins("JOIN products ON products.id = inventories.product_id").
			Where("products.category_id = ?", *f.CategoryID)
	}

	return db
}
