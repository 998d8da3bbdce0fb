package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создает новый репозиторий сотрудников
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create создает нового сотрудника
func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	result := r.db.WithContext(ctx).Create(employee)
	return result.Error
}

// GetByID получает сотрудника по ID
func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	result := r.db.WithContext(ctx).First(&employee, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, result.Error
	}

	return &employee, nil
}

// GetAll получает всех сотрудников
func (r *employeeRepository) GetAll(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	result := r.db.WithContext(ctx).Order("name ASC").Find(&employees)

	if result.Error != nil {
		return nil, result.Error
	}

	return employees, nil
}

// Update обновляет сотрудника
// Дата приема на работу не обновляется: она устанавливается один раз
func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	result := r.db.WithContext(ctx).Model(employee).Where("id = ?", employee.ID).Updates(map[string]interface{}{
		"name":     employee.Name,
		"position": employee.Position,
		"phone":    employee.Phone,
		"email":    employee.Email,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// Delete удаляет сотрудника
func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Employee{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// Count возвращает общее число сотрудников
func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Employee{}).Count(&count).Error
	return count, err
}

// Search ищет сотрудников по подстроке в имени, должности или email
// без учета регистра
func (r *employeeRepository) Search(ctx context.Context, query string) ([]entity.Employee, error) {
	pattern := "%" + query + "%"

	var employees []entity.Employee
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR position ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}
