package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recentSalesLimit - число последних продаж на дашборде
// и в карточке сотрудника
const recentSalesLimit = 10

// ReportService строит отчеты, сводки и данные для графиков
// Агрегаты считаются по всей отфильтрованной выборке, а не по странице
type ReportService struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	employeeRepo  repository.EmployeeRepository
	supplierRepo  repository.SupplierRepository
}

// NewReportService создает новый сервис отчетов с внедрением зависимостей
func NewReportService(
	saleRepo repository.SaleRepository,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	employeeRepo repository.EmployeeRepository,
	supplierRepo repository.SupplierRepository,
) *ReportService {
	return &ReportService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		employeeRepo:  employeeRepo,
		supplierRepo:  supplierRepo,
	}
}

// SalesReport возвращает страницу продаж с агрегатами по всей выборке:
// число продаж, суммарная выручка и средний чек
//
// Выручка считается как сумма цен продаж без умножения на количество,
// построчная сумма quantity * price отдается отдельным полем total_price
func (s *ReportService) SalesReport(ctx context.Context, f entity.SaleFilter) (*entity.SalesReport, error) {
	sales, pagination, err := s.saleRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	totalRevenue, err := s.saleRepo.SumPrice(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}

	averageSale := decimal.Zero
	if pagination.TotalItems > 0 {
		averageSale = totalRevenue.Div(decimal.NewFromInt(pagination.TotalItems)).Round(2)
	}

	return &entity.SalesReport{
		Sales:        saleRows(sales),
		Pagination:   pagination,
		TotalSales:   pagination.TotalItems,
		TotalRevenue: totalRevenue,
		AverageSale:  averageSale,
	}, nil
}

// GetSale возвращает продажу с вычисленной суммой quantity * price
func (s *ReportService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleRow, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return &entity.SaleRow{
		Sale:       *sale,
		TotalPrice: sale.Price.Mul(decimal.NewFromInt(int64(sale.Quantity))),
	}, nil
}

// GetInventory возвращает поступление со стоимостью quantity * unit_price
func (s *ReportService) GetInventory(ctx context.Context, id uuid.UUID) (*entity.InventoryRow, error) {
	inv, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory record: %w", err)
	}

	return &entity.InventoryRow{
		Inventory:  *inv,
		TotalValue: inv.UnitPrice.Mul(decimal.NewFromInt(int64(inv.Quantity))),
	}, nil
}

// InventoryReport возвращает страницу поступлений с агрегатами:
// число различных товаров, суммарное количество и стоимость выборки
func (s *ReportService) InventoryReport(ctx context.Context, f entity.InventoryFilter) (*entity.InventoryReport, error) {
	inventories, pagination, err := s.inventoryRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}

	totalProducts, err := s.inventoryRepo.CountDistinctProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct products: %w", err)
	}

	totalItems, err := s.inventoryRepo.SumQuantity(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to sum quantities: %w", err)
	}

	totalValue, err := s.inventoryRepo.SumValue(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to sum inventory value: %w", err)
	}

	return &entity.InventoryReport{
		Inventories:   inventoryRows(inventories),
		Pagination:    pagination,
		TotalProducts: totalProducts,
		TotalItems:    totalItems,
		TotalValue:    totalValue,
	}, nil
}

// Dashboard строит сводку для главной страницы:
// общая выручка, счетчики, последние продажи, товары с низким остатком
// и два графика (выручка за 30 дней, продажи по категориям)
func (s *ReportService) Dashboard(ctx context.Context, now time.Time) (*entity.DashboardResponse, error) {
	totalRevenue, err := s.saleRepo.SumPrice(ctx, entity.SaleFilter{Now: now})
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	lowStockCount, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	totalEmployees, err := s.employeeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	recentSales, err := s.saleRepo.Recent(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}

	lowStockProducts, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}

	salesChart, err := s.dailyRevenueChart(ctx, now, 30)
	if err != nil {
		return nil, err
	}

	categoryChart, err := s.categorySalesChart(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.DashboardResponse{
		TotalRevenue:     totalRevenue,
		TotalProducts:    totalProducts,
		LowStockCount:    lowStockCount,
		TotalEmployees:   totalEmployees,
		RecentSales:      saleRows(recentSales),
		LowStockProducts: lowStockProducts,
		SalesChart:       *salesChart,
		CategoryChart:    *categoryChart,
	}, nil
}

// SalesChart возвращает ряд выручки для графика
// daily - 30 дней, weekly - 12 недель, monthly - 12 месяцев
func (s *ReportService) SalesChart(ctx context.Context, period string, now time.Time) (*entity.ChartData, error) {
	switch period {
	case entity.ChartPeriodWeekly:
		return s.weeklyRevenueChart(ctx, now, 12)
	case entity.ChartPeriodMonthly:
		return s.monthlyRevenueChart(ctx, now, 12)
	default:
		return s.dailyRevenueChart(ctx, now, 30)
	}
}

// EmployeePerformanceChart возвращает число продаж по каждому сотруднику
// за выбранный период: текущий месяц, прошлый месяц или текущий год
func (s *ReportService) EmployeePerformanceChart(ctx context.Context, period string, now time.Time) (*entity.ChartData, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	chart := &entity.ChartData{
		Labels: make([]string, 0, len(employees)),
		Values: make([]float64, 0, len(employees)),
	}

	for i := range employees {
		f := entity.SaleFilter{Now: now, EmployeeID: &employees[i].ID}

		switch period {
		case entity.PerfPeriodLastMonth:
			f.DateRange = entity.DateRangeLastMonth
		case entity.PerfPeriodThisYear:
			yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
			f.StartDate = &yearStart
			end := now
			f.EndDate = &end
		default:
			f.DateRange = entity.DateRangeThisMonth
		}

		count, err := s.saleRepo.Count(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to count sales: %w", err)
		}

		chart.Labels = append(chart.Labels, employees[i].Name)
		chart.Values = append(chart.Values, float64(count))
	}

	return chart, nil
}

// Search выполняет поиск подстроки без учета регистра по товарам,
// сотрудникам и поставщикам
func (s *ReportService) Search(ctx context.Context, query string) (*entity.SearchResponse, error) {
	resp := &entity.SearchResponse{
		Query:     query,
		Products:  []entity.Product{},
		Employees: []entity.Employee{},
		Suppliers: []entity.Supplier{},
	}

	if query == "" {
		return resp, nil
	}

	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	employees, err := s.employeeRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}

	suppliers, err := s.supplierRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search suppliers: %w", err)
	}

	if products != nil {
		resp.Products = products
	}
	if employees != nil {
		resp.Employees = employees
	}
	if suppliers != nil {
		resp.Suppliers = suppliers
	}

	return resp, nil
}

// dailyRevenueChart строит ряд выручки по дням, от старых к новым
func (s *ReportService) dailyRevenueChart(ctx context.Context, now time.Time, days int) (*entity.ChartData, error) {
	chart := &entity.ChartData{
		Labels: make([]string, 0, days),
		Values: make([]float64, 0, days),
	}

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)

		sum, err := s.revenueBetween(ctx, now, day, day)
		if err != nil {
			return nil, err
		}

		chart.Labels = append(chart.Labels, day.Format("Jan 02"))
		chart.Values = append(chart.Values, sum)
	}

	return chart, nil
}

// weeklyRevenueChart строит ряд выручки по неделям (с понедельника)
func (s *ReportService) weeklyRevenueChart(ctx context.Context, now time.Time, weeks int) (*entity.ChartData, error) {
	chart := &entity.ChartData{
		Labels: make([]string, 0, weeks),
		Values: make([]float64, 0, weeks),
	}

	currentWeekStart := repository.MondayOf(now)

	for i := weeks - 1; i >= 0; i-- {
		weekStart := currentWeekStart.AddDate(0, 0, -7*i)
		weekEnd := weekStart.AddDate(0, 0, 6)

		sum, err := s.revenueBetween(ctx, now, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}

		chart.Labels = append(chart.Labels, weekStart.Format("Jan 02"))
		chart.Values = append(chart.Values, sum)
	}

	return chart, nil
}

// monthlyRevenueChart строит ряд выручки по календарным месяцам
func (s *ReportService) monthlyRevenueChart(ctx context.Context, now time.Time, months int) (*entity.ChartData, error) {
	chart := &entity.ChartData{
		Labels: make([]string, 0, months),
		Values: make([]float64, 0, months),
	}

	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, -1)

		sum, err := s.revenueBetween(ctx, now, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		chart.Labels = append(chart.Labels, monthStart.Format("Jan 2006"))
		chart.Values = append(chart.Values, sum)
	}

	return chart, nil
}

// categorySalesChart строит число продаж по каждой категории
func (s *ReportService) categorySalesChart(ctx context.Context) (*entity.ChartData, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	chart := &entity.ChartData{
		Labels: make([]string, 0, len(categories)),
		Values: make([]float64, 0, len(categories)),
	}

	for i := range categories {
		count, err := s.saleRepo.Count(ctx, entity.SaleFilter{CategoryID: &categories[i].ID})
		if err != nil {
			return nil, fmt.Errorf("failed to count sales: %w", err)
		}

		chart.Labels = append(chart.Labels, categories[i].Name)
		chart.Values = append(chart.Values, float64(count))
	}

	return chart, nil
}

// revenueBetween возвращает выручку за интервал дат включительно
func (s *ReportService) revenueBetween(ctx context.Context, now, start, end time.Time) (float64, error) {
	sum, err := s.saleRepo.SumPrice(ctx, entity.SaleFilter{
		Now:       now,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}

	return sum.InexactFloat64(), nil
}

// saleRows дополняет продажи вычисленной суммой quantity * price
func saleRows(sales []entity.Sale) []entity.SaleRow {
	rows := make([]entity.SaleRow, 0, len(sales))
	for i := range sales {
		rows = append(rows, entity.SaleRow{
			Sale:       sales[i],
			TotalPrice: sales[i].Price.Mul(decimal.NewFromInt(int64(sales[i].Quantity))),
		})
	}
	return rows
}

// inventoryRows дополняет поступления стоимостью quantity * unit_price
func inventoryRows(inventories []entity.Inventory) []entity.InventoryRow {
	rows := make([]entity.InventoryRow, 0, len(inventories))
	for i := range inventories {
		rows = append(rows, entity.InventoryRow{
			Inventory:  inventories[i],
			TotalValue: inventories[i].UnitPrice.Mul(decimal.NewFromInt(int64(inventories[i].Quantity))),
		})
	}
	return rows
}
