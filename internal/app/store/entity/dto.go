package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateProductRequest struct {
	Name          string    `json:"name" validate:"required,min=2,max=100"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Size          *string   `json:"size" validate:"omitempty,max=20"`
	Color         *string   `json:"color" validate:"omitempty,max=50"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name       string    `json:"name" validate:"omitempty,min=2,max=100"`
	CategoryID uuid.UUID `json:"category_id" validate:"omitempty"`
	Size       *string   `json:"size" validate:"omitempty,max=20"`
	Color      *string   `json:"color" validate:"omitempty,max=50"`
	Price      float64   `json:"price" validate:"omitempty,gt=0"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	ContactPerson string `json:"contact_person" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=20"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
}

type UpdateSupplierRequest struct {
	Name          string `json:"name" validate:"omitempty,min=2,max=100"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"omitempty"`
}

// CreateSaleRequest - регистрация продажи
// Количество обязательно положительное, проверка достаточности остатка
// намеренно не выполняется (остаток может уйти в минус)
type CreateSaleRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	Price      float64   `json:"price" validate:"required,gt=0"`
}

// CreateInventoryRequest - регистрация поступления товара
type CreateInventoryRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	SupplierID uuid.UUID `json:"supplier_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64   `json:"unit_price" validate:"required,gt=0"`
}

type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Position string `json:"position" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email"`
	// Опциональное создание учетной записи для входа
	CreateUser bool   `json:"create_user"`
	Username   string `json:"username" validate:"required_if=CreateUser true,omitempty,min=3,max=150"`
	Password   string `json:"password" validate:"required_if=CreateUser true,omitempty,min=8"`
}

type UpdateEmployeeRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Position string `json:"position" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
	// Смена пароля привязанной учетной записи, если она есть
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SaleRow - продажа, дополненная вычисленной суммой quantity * price
type SaleRow struct {
	Sale
	TotalPrice decimal.Decimal `json:"total_price"`
}

// InventoryRow - поступление, дополненное стоимостью quantity * unit_price
type InventoryRow struct {
	Inventory
	TotalValue decimal.Decimal `json:"total_value"`
}

// EmployeeRow - сотрудник с показателями продаж
type EmployeeRow struct {
	Employee
	SalesCount            int64           `json:"sales_count"`
	SalesRevenue          decimal.Decimal `json:"sales_revenue"`
	PerformancePercentage float64         `json:"performance_percentage"`
}

// SalesReport - страница продаж с агрегатами по всей отфильтрованной выборке
type SalesReport struct {
	Sales        []SaleRow       `json:"sales"`
	Pagination   Pagination      `json:"pagination"`
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageSale  decimal.Decimal `json:"average_sale"`
}

// InventoryReport - страница поступлений с агрегатами
type InventoryReport struct {
	Inventories   []InventoryRow  `json:"inventories"`
	Pagination    Pagination      `json:"pagination"`
	TotalProducts int64           `json:"total_products"` // Число различных товаров в выборке
	TotalItems    int64           `json:"total_items"`    // Сумма количеств
	TotalValue    decimal.Decimal `json:"total_value"`    // Сумма quantity * unit_price
}

// ProductsReport - страница товаров
type ProductsReport struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// DashboardResponse - сводка для главной страницы
type DashboardResponse struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProducts    int64           `json:"total_products"`
	LowStockCount    int64           `json:"low_stock_count"`
	TotalEmployees   int64           `json:"total_employees"`
	RecentSales      []SaleRow       `json:"recent_sales"`
	LowStockProducts []Product       `json:"low_stock_products"`
	SalesChart       ChartData       `json:"sales_chart"`    // Выручка за последние 30 дней
	CategoryChart    ChartData       `json:"category_chart"` // Число продаж по категориям
}

// ChartData - данные для графиков в формате {labels, values}
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// EmployeeDetailResponse - карточка сотрудника с показателями
type EmployeeDetailResponse struct {
	Employee     Employee        `json:"employee"`
	RecentSales  []SaleRow       `json:"recent_sales"` // 10 последних продаж
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	MonthlyChart ChartData       `json:"monthly_chart"` // Выручка за последние 6 месяцев
}

// SearchResponse - результаты текстового поиска по товарам,
// сотрудникам и поставщикам
type SearchResponse struct {
	Query     string     `json:"query"`
	Products  []Product  `json:"products"`
	Employees []Employee `json:"employees"`
	Suppliers []Supplier `json:"suppliers"`
}
