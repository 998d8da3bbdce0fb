package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository создает новый репозиторий поставщиков
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

// Create создает нового поставщика
func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	result := r.db.WithContext(ctx).Create(supplier)
	return result.Error
}

// GetByID получает поставщика по ID
func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	result := r.db.WithContext(ctx).First(&supplier, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, result.Error
	}

	return &supplier, nil
}

// GetAll получает всех поставщиков
func (r *supplierRepository) GetAll(ctx context.Context) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	result := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers)

	if result.Error != nil {
		return nil, result.Error
	}

	return suppliers, nil
}

// Update обновляет поставщика
func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	result := r.db.WithContext(ctx).Model(supplier).Where("id = ?", supplier.ID).Updates(map[string]interface{}{
		"name":           supplier.Name,
		"contact_person": supplier.ContactPerson,
		"phone":          supplier.Phone,
		"email":          supplier.Email,
		"address":        supplier.Address,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

// Delete удаляет поставщика
func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

// Search ищет поставщиков по подстроке в имени, контактном лице или email
// без учета регистра
func (r *supplierRepository) Search(ctx context.Context, query string) ([]entity.Supplier, error) {
	pattern := "%" + query + "%"

	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}
