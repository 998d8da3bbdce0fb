package service

import (
	"context"
	"time"

	"storetrack/internal/app/store/entity"

	"github.com/google/uuid"
)

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, f entity.ProductFilter) (*entity.ProductsReport, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateSupplier(ctx context.Context, req *entity.CreateSupplierRequest) (*entity.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetAllSuppliers(ctx context.Context) ([]entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, req *entity.UpdateSupplierRequest) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
}

// StockServiceInterface - операции, изменяющие остатки товаров
type StockServiceInterface interface {
	RecordSale(ctx context.Context, req *entity.CreateSaleRequest, now time.Time) (*entity.Sale, error)
	ReverseSale(ctx context.Context, saleID uuid.UUID) error
	RecordReceipt(ctx context.Context, req *entity.CreateInventoryRequest, now time.Time) (*entity.Inventory, error)
	ReverseReceipt(ctx context.Context, inventoryID uuid.UUID) error
	RecentMovements(ctx context.Context, limit int64) ([]entity.StockMovement, error)
	PublishLowStockAlert(ctx context.Context) error
}

// ReportServiceInterface - отчеты, сводки, графики и поиск
type ReportServiceInterface interface {
	SalesReport(ctx context.Context, f entity.SaleFilter) (*entity.SalesReport, error)
	GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleRow, error)
	InventoryReport(ctx context.Context, f entity.InventoryFilter) (*entity.InventoryReport, error)
	GetInventory(ctx context.Context, id uuid.UUID) (*entity.InventoryRow, error)
	Dashboard(ctx context.Context, now time.Time) (*entity.DashboardResponse, error)
	SalesChart(ctx context.Context, period string, now time.Time) (*entity.ChartData, error)
	EmployeePerformanceChart(ctx context.Context, period string, now time.Time) (*entity.ChartData, error)
	Search(ctx context.Context, query string) (*entity.SearchResponse, error)

	ExportProducts(ctx context.Context) ([]entity.ProductCSVRow, error)
	ExportSales(ctx context.Context, f entity.SaleFilter) ([]entity.SaleCSVRow, error)
	ExportInventories(ctx context.Context, f entity.InventoryFilter) ([]entity.InventoryCSVRow, error)
	ExportEmployees(ctx context.Context, now time.Time) ([]entity.EmployeeCSVRow, error)
}

// EmployeeServiceInterface - сотрудники и их показатели продаж
type EmployeeServiceInterface interface {
	CreateEmployee(ctx context.Context, req *entity.CreateEmployeeRequest, now time.Time) (*entity.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID, now time.Time) (*entity.EmployeeDetailResponse, error)
	ListEmployees(ctx context.Context, now time.Time) ([]entity.EmployeeRow, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req *entity.UpdateEmployeeRequest) (*entity.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
}

type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
}
