package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stockRepository связывает записи событий (Sale, Inventory) с остатком
// товара. Каждая операция выполняется в одной транзакции: строка события
// и поле stock_quantity либо записываются вместе, либо откатываются вместе.
//
// Остаток меняется одним UPDATE со встроенной арифметикой, поэтому два
// конкурентных запроса по одному товару не могут прочитать одинаковое
// устаревшее значение и потерять декремент.
//
// Проверки достаточности остатка нет: продажа или отмена поступления
// может увести stock_quantity в минус.
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository создает репозиторий согласованности остатков
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

// RecordSale сохраняет продажу и уменьшает остаток товара на ее количество
// Возвращает остаток после списания
func (r *stockRepository) RecordSale(ctx context.Context, sale *entity.Sale) (int, error) {
	var stockAfter int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		after, err := adjustStock(tx, sale.ProductID, -sale.Quantity)
		if err != nil {
			return err
		}
		stockAfter = after

		return tx.Create(sale).Error
	})
	if err != nil {
		return 0, err
	}

	return stockAfter, nil
}

// ReverseSale удаляет продажу и возвращает ее количество на остаток товара
func (r *stockRepository) ReverseSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, int, error) {
	var (
		sale       entity.Sale
		stockAfter int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		after, err := adjustStock(tx, sale.ProductID, sale.Quantity)
		if err != nil {
			return err
		}
		stockAfter = after

		return tx.Delete(&entity.Sale{}, "id = ?", saleID).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return &sale, stockAfter, nil
}

// RecordReceipt сохраняет поступление и увеличивает остаток товара
// Возвращает остаток после прихода
func (r *stockRepository) RecordReceipt(ctx context.Context, inv *entity.Inventory) (int, error) {
	var stockAfter int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		after, err := adjustStock(tx, inv.ProductID, inv.Quantity)
		if err != nil {
			return err
		}
		stockAfter = after

		return tx.Create(inv).Error
	})
	if err != nil {
		return 0, err
	}

	return stockAfter, nil
}

// ReverseReceipt удаляет поступление и списывает его количество с остатка
// Может увести остаток в минус, если товар уже был продан
func (r *stockRepository) ReverseReceipt(ctx context.Context, inventoryID uuid.UUID) (*entity.Inventory, int, error) {
	var (
		inv        entity.Inventory
		stockAfter int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, "id = ?", inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInventoryNotFound
			}
			return err
		}

		after, err := adjustStock(tx, inv.ProductID, -inv.Quantity)
		if err != nil {
			return err
		}
		stockAfter = after

		return tx.Delete(&entity.Inventory{}, "id = ?", inventoryID).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return &inv, stockAfter, nil
}

// adjustStock атомарно прибавляет delta к остатку товара
// и возвращает новое значение
func adjustStock(tx *gorm.DB, productID uuid.UUID, delta int) (int, error) {
	var stockAfter int

	result := tx.Raw(
		`UPDATE products SET stock_quantity = stock_quantity + ?, updated_at = NOW() WHERE id = ? RETURNING stock_quantity`,
		delta, productID,
	).Scan(&stockAfter)

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, ErrProductNotFound
	}

	return stockAfter, nil
}
