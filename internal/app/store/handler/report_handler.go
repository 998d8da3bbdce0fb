package handler

import (
	"errors"
	"net/http"
	"time"

	"storetrack/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler обрабатывает HTTP запросы отчетов, сводок,
// графиков и поиска
type ReportHandler struct {
	reportService service.ReportServiceInterface
}

// NewReportHandler создает новый обработчик отчетов
func NewReportHandler(reportService service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetDashboard обрабатывает GET /dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ListSales обрабатывает GET /sales
// Поддерживает фильтры date_range, start_date, end_date, employee,
// category и пагинацию через page
func (h *ReportHandler) ListSales(c *gin.Context) {
	report, err := h.reportService.SalesReport(c.Request.Context(), saleFilterFromQuery(c, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSale обрабатывает GET /sales/:id
func (h *ReportHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}

	sale, err := h.reportService.GetSale(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sale"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// ListInventory обрабатывает GET /inventory
// Поддерживает фильтры date_range, start_date, end_date, supplier,
// category и пагинацию через page
func (h *ReportHandler) ListInventory(c *gin.Context) {
	report, err := h.reportService.InventoryReport(c.Request.Context(), inventoryFilterFromQuery(c, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inventory"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetInventory обрабатывает GET /inventory/:id
func (h *ReportHandler) GetInventory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	inv, err := h.reportService.GetInventory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inventory record"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// GetSalesData обрабатывает GET /api/sales-data
// Возвращает ряд выручки: daily - 30 дней, weekly - 12 недель,
// monthly - 12 месяцев
func (h *ReportHandler) GetSalesData(c *gin.Context) {
	chart, err := h.reportService.SalesChart(c.Request.Context(), c.DefaultQuery("period", "daily"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales chart"})
		return
	}

	c.JSON(http.StatusOK, chart)
}

// GetEmployeePerformance обрабатывает GET /api/employee-performance
// Возвращает число продаж по сотрудникам за период this_month,
// last_month или this_year
func (h *ReportHandler) GetEmployeePerformance(c *gin.Context) {
	chart, err := h.reportService.EmployeePerformanceChart(c.Request.Context(), c.DefaultQuery("period", "this_month"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build performance chart"})
		return
	}

	c.JSON(http.StatusOK, chart)
}

// Search обрабатывает GET /search
// Поиск подстроки без учета регистра по товарам, сотрудникам и поставщикам
func (h *ReportHandler) Search(c *gin.Context) {
	results, err := h.reportService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search"})
		return
	}

	c.JSON(http.StatusOK, results)
}
