package handler

import (
	"net/http"

	"storetrack/pkg/logger"
	"storetrack/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers собирает все обработчики приложения для настройки маршрутов
type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Stock    *StockHandler
	Report   *ReportHandler
	Employee *EmployeeHandler
	Export   *ExportHandler
}

// SetupRoutes настраивает все маршруты Storetrack с использованием Gin
// Публичные эндпоинты: /health, /metrics и /auth/login
// Остальные требуют JWT токен
func SetupRoutes(h *Handlers, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("storetrack"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storetrack",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/login", h.Auth.Login)

	api := router.Group("/")
	api.Use(authMiddleware.Authenticate())
	{
		api.GET("/dashboard", h.Report.GetDashboard)

		categories := api.Group("/categories")
		{
			categories.POST("", h.Catalog.CreateCategory)
			categories.GET("", h.Catalog.GetCategories)
			categories.GET("/:id", h.Catalog.GetCategory)
			categories.PUT("/:id", h.Catalog.UpdateCategory)
			categories.DELETE("/:id", h.Catalog.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("", h.Catalog.ListProducts)
			products.GET("/export", h.Export.ExportProducts)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
			products.DELETE("/:id", h.Catalog.DeleteProduct)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", h.Catalog.CreateSupplier)
			suppliers.GET("", h.Catalog.GetSuppliers)
			suppliers.GET("/:id", h.Catalog.GetSupplier)
			suppliers.PUT("/:id", h.Catalog.UpdateSupplier)
			suppliers.DELETE("/:id", h.Catalog.DeleteSupplier)
		}

		// Продажи и поступления создаются и удаляются, но не редактируются:
		// каждая запись уже применена к остатку товара
		sales := api.Group("/sales")
		{
			sales.POST("", h.Stock.CreateSale)
			sales.GET("", h.Report.ListSales)
			sales.GET("/export", h.Export.ExportSales)
			sales.GET("/:id", h.Report.GetSale)
			sales.DELETE("/:id", h.Stock.DeleteSale)
		}

		inventory := api.Group("/inventory")
		{
			inventory.POST("", h.Stock.CreateInventory)
			inventory.GET("", h.Report.ListInventory)
			inventory.GET("/export", h.Export.ExportInventory)
			inventory.GET("/:id", h.Report.GetInventory)
			inventory.DELETE("/:id", h.Stock.DeleteInventory)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", h.Employee.CreateEmployee)
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/export", h.Export.ExportEmployees)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.PUT("/:id", h.Employee.UpdateEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
		}

		api.GET("/stock/movements", h.Stock.GetStockMovements)

		api.GET("/api/sales-data", h.Report.GetSalesData)
		api.GET("/api/employee-performance", h.Report.GetEmployeePerformance)

		api.GET("/search", h.Report.Search)
	}

	return router
}
