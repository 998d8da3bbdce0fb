package repository

import (
	"context"
	"errors"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInventoryNotFound = errors.New("inventory record not found")
	ErrUserNotFound      = errors.New("user not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	List(ctx context.Context, f entity.ProductFilter) ([]entity.Product, entity.Pagination, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	FindLowStock(ctx context.Context) ([]entity.Product, error)
	Search(ctx context.Context, query string) ([]entity.Product, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetAll(ctx context.Context) ([]entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]entity.Supplier, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetAll(ctx context.Context) ([]entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]entity.Employee, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRepository - выборки и агрегаты по продажам
// Создание и удаление продаж идет только через StockRepository
type SaleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, f entity.SaleFilter) ([]entity.Sale, entity.Pagination, error)
	ListAll(ctx context.Context, f entity.SaleFilter) ([]entity.Sale, error)
	Count(ctx context.Context, f entity.SaleFilter) (int64, error)
	SumPrice(ctx context.Context, f entity.SaleFilter) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]entity.Sale, error)
}

// InventoryRepository - выборки и агрегаты по поступлениям
// Создание и удаление поступлений идет только через StockRepository
type InventoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Inventory, error)
	List(ctx context.Context, f entity.InventoryFilter) ([]entity.Inventory, entity.Pagination, error)
	ListAll(ctx context.Context, f entity.InventoryFilter) ([]entity.Inventory, error)
	Count(ctx context.Context, f entity.InventoryFilter) (int64, error)
	CountDistinctProducts(ctx context.Context, f entity.InventoryFilter) (int64, error)
	SumQuantity(ctx context.Context, f entity.InventoryFilter) (int64, error)
	SumValue(ctx context.Context, f entity.InventoryFilter) (decimal.Decimal, error)
}

// StockRepository выполняет парные записи (строка события + остаток товара)
// в одной транзакции БД. Изменение остатка делается одним UPDATE,
// поэтому конкурентные продажи одного товара не теряют декременты.
// Методы возвращают остаток товара после применения операции.
type StockRepository interface {
	RecordSale(ctx context.Context, sale *entity.Sale) (int, error)
	ReverseSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, int, error)
	RecordReceipt(ctx context.Context, inv *entity.Inventory) (int, error)
	ReverseReceipt(ctx context.Context, inventoryID uuid.UUID) (*entity.Inventory, int, error)
}

// MovementRepository - журнал движения остатков в MongoDB (append-only)
type MovementRepository interface {
	Insert(ctx context.Context, movement *entity.StockMovement) error
	Recent(ctx context.Context, limit int64) ([]entity.StockMovement, error)
}
