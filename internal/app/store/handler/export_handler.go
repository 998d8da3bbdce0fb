package handler

import (
	"net/http"
	"time"

	"storetrack/internal/app/store/service"
	"storetrack/pkg/logger"
	"storetrack/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

// ExportHandler отдает CSV выгрузки отчетов
type ExportHandler struct {
	reportService service.ReportServiceInterface
}

// NewExportHandler создает новый обработчик CSV выгрузок
func NewExportHandler(reportService service.ReportServiceInterface) *ExportHandler {
	return &ExportHandler{
		reportService: reportService,
	}
}

// ExportProducts обрабатывает GET /products/export
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	rows, err := h.reportService.ExportProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export products"})
		return
	}

	writeCSV(c, "products.csv", "products", &rows)
}

// ExportSales обрабатывает GET /sales/export
// Применяет те же фильтры, что и список продаж, но без пагинации
func (h *ExportHandler) ExportSales(c *gin.Context) {
	rows, err := h.reportService.ExportSales(c.Request.Context(), saleFilterFromQuery(c, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export sales"})
		return
	}

	writeCSV(c, "sales.csv", "sales", &rows)
}

// ExportInventory обрабатывает GET /inventory/export
func (h *ExportHandler) ExportInventory(c *gin.Context) {
	rows, err := h.reportService.ExportInventories(c.Request.Context(), inventoryFilterFromQuery(c, time.Now()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export inventory"})
		return
	}

	writeCSV(c, "inventory.csv", "inventory", &rows)
}

// ExportEmployees обрабатывает GET /employees/export
func (h *ExportHandler) ExportEmployees(c *gin.Context) {
	rows, err := h.reportService.ExportEmployees(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export employees"})
		return
	}

	writeCSV(c, "employees.csv", "employees", &rows)
}

// writeCSV сериализует строки в CSV и отдает их файлом
func writeCSV(c *gin.Context, filename, entityLabel string, rows interface{}) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := gocsv.Marshal(rows, c.Writer); err != nil {
		// Заголовки уже могли уйти клиенту, статус не меняем
		logger.Error().Err(err).Str("file", filename).Msg("failed to write csv")
		return
	}

	metrics.CsvExports.WithLabelValues(entityLabel).Inc()
}
