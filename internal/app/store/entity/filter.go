package entity

import (
	"time"

	"github.com/google/uuid"
)

// PageSize - фиксированный размер страницы для всех списков
const PageSize = 10

// Именованные календарные окна для фильтров по дате
const (
	DateRangeToday     = "today"
	DateRangeYesterday = "yesterday"
	DateRangeThisWeek  = "this_week"
	DateRangeLastWeek  = "last_week"
	DateRangeThisMonth = "this_month"
	DateRangeLastMonth = "last_month"
)

// Статусы остатков для фильтра товаров
// Граница: ровно 10 единиц не попадает ни в in_stock, ни в low_stock
const (
	StockStatusInStock    = "in_stock"     // stock_quantity > 10
	StockStatusLowStock   = "low_stock"    // 0 < stock_quantity < 10
	StockStatusOutOfStock = "out_of_stock" // stock_quantity == 0
)

// Периоды для графика выручки
const (
	ChartPeriodDaily   = "daily"
	ChartPeriodWeekly  = "weekly"
	ChartPeriodMonthly = "monthly"
)

// Периоды для графика производительности сотрудников
const (
	PerfPeriodThisMonth = "this_month"
	PerfPeriodLastMonth = "last_month"
	PerfPeriodThisYear  = "this_year"
)

// SaleFilter - параметры фильтрации продаж
// Now передается явно, чтобы вычисление календарных окон было детерминированным
type SaleFilter struct {
	Now        time.Time
	DateRange  string
	StartDate  *time.Time // Явный интервал дат, включительно
	EndDate    *time.Time // Применяется вместе с DateRange (сужает выборку)
	EmployeeID *uuid.UUID
	CategoryID *uuid.UUID
	Page       int
}

// InventoryFilter - параметры фильтрации поступлений
type InventoryFilter struct {
	Now        time.Time
	DateRange  string
	StartDate  *time.Time
	EndDate    *time.Time
	SupplierID *uuid.UUID
	CategoryID *uuid.UUID
	Page       int
}

// ProductFilter - параметры фильтрации товаров
type ProductFilter struct {
	CategoryID  *uuid.UUID
	StockStatus string
	Page        int
}

// Pagination описывает страницу результата
// Номер страницы вне диапазона прижимается к ближайшей допустимой странице
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}
