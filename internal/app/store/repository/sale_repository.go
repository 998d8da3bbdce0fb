package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository создает новый репозиторий продаж
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// GetByID получает продажу по ID вместе с товаром и сотрудником
func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	result := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Employee").
		First(&sale, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, result.Error
	}

	return &sale, nil
}

// List получает страницу продаж по фильтру, от новых к старым
func (r *saleRepository) List(ctx context.Context, f entity.SaleFilter) ([]entity.Sale, entity.Pagination, error) {
	total, err := r.Count(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, err
	}

	pagination, offset := paginate(total, f.Page)

	var sales []entity.Sale
	err = r.filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), f).
		Preload("Product.Category").
		Preload("Employee").
		Order("sales.date_time DESC").
		Offset(offset).
		Limit(entity.PageSize).
		Find(&sales).Error
	if err != nil {
		return nil, entity.Pagination{}, err
	}

	return sales, pagination, nil
}

// ListAll получает все продажи под фильтром без пагинации
// Используется для CSV выгрузок
func (r *saleRepository) ListAll(ctx context.Context, f entity.SaleFilter) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), f).
		Preload("Product.Category").
		Preload("Employee").
		Order("sales.date_time DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	return sales, nil
}

// Count возвращает число продаж, попадающих под фильтр
func (r *saleRepository) Count(ctx context.Context, f entity.SaleFilter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), f).Count(&count).Error
	return count, err
}

// SumPrice возвращает сумму цен продаж под фильтром, 0 для пустой выборки
func (r *saleRepository) SumPrice(ctx context.Context, f entity.SaleFilter) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.filtered(r.db.WithContext(ctx).Model(&entity.Sale{}), f).
		Select("COALESCE(SUM(sales.price), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Recent возвращает limit последних продаж
func (r *saleRepository) Recent(ctx context.Context, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Employee").
		Order("date_time DESC").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// filtered накладывает все условия фильтра на запрос
// Фильтр по категории идет через связь с товаром
func (r *saleRepository) filtered(db *gorm.DB, f entity.SaleFilter) *gorm.DB {
	db = applyDateFilter(db, "sales.date_time", f.DateRange, f.StartDate, f.EndDate, f.Now)

	if f.EmployeeID != nil {
		db = db.Where("sales.employee_id = ?", *f.EmployeeID)
	}

	if f.CategoryID != nil {
		db = db.Joins("JOIN products ON products.id = sales.product_id").
			Where("products.category_id = ?", *f.CategoryID)
	}

	return db
}
