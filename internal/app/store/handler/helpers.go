package handler

import (
	"strconv"
	"time"

	"storetrack/internal/app/store/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// queryDateFormat - формат дат в query параметрах start_date и end_date
const queryDateFormat = "2006-01-02"

// formatValidationError возвращает первую ошибку валидации в читаемом виде
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

// pageFromQuery читает номер страницы, по умолчанию 1
// Значения вне диапазона прижимаются на уровне репозитория
func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// uuidFromQuery читает необязательный UUID параметр
// Невалидные значения игнорируются, фильтр не применяется
func uuidFromQuery(c *gin.Context, name string) *uuid.UUID {
	value := c.Query(name)
	if value == "" {
		return nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}

	return &id
}

// dateFromQuery читает необязательную дату в формате YYYY-MM-DD
func dateFromQuery(c *gin.Context, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}

	date, err := time.Parse(queryDateFormat, value)
	if err != nil {
		return nil
	}

	return &date
}

// saleFilterFromQuery собирает фильтр продаж из query параметров
func saleFilterFromQuery(c *gin.Context, now time.Time) entity.SaleFilter {
	return entity.SaleFilter{
		Now:        now,
		DateRange:  c.Query("date_range"),
		StartDate:  dateFromQuery(c, "start_date"),
		EndDate:    dateFromQuery(c, "end_date"),
		EmployeeID: uuidFromQuery(c, "employee"),
		CategoryID: uuidFromQuery(c, "category"),
		Page:       pageFromQuery(c),
	}
}

// inventoryFilterFromQuery собирает фильтр поступлений из query параметров
func inventoryFilterFromQuery(c *gin.Context, now time.Time) entity.InventoryFilter {
	return entity.InventoryFilter{
		Now:        now,
		DateRange:  c.Query("date_range"),
		StartDate:  dateFromQuery(c, "start_date"),
		EndDate:    dateFromQuery(c, "end_date"),
		SupplierID: uuidFromQuery(c, "supplier"),
		CategoryID: uuidFromQuery(c, "category"),
		Page:       pageFromQuery(c),
	}
}

// productFilterFromQuery собирает фильтр товаров из query параметров
// Статус остатка передается параметром stock, stock_status принимается
// как синоним
func productFilterFromQuery(c *gin.Context) entity.ProductFilter {
	stockStatus := c.Query("stock")
	if stockStatus == "" {
		stockStatus = c.Query("stock_status")
	}

	return entity.ProductFilter{
		CategoryID:  uuidFromQuery(c, "category"),
		StockStatus: stockStatus,
		Page:        pageFromQuery(c),
	}
}
