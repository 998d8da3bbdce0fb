package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// movementsDefaultLimit - число записей журнала движения по умолчанию
const movementsDefaultLimit = 50

// StockHandler обрабатывает HTTP запросы, изменяющие остатки товаров:
// продажи, поступления, их отмены и журнал движения
type StockHandler struct {
	stockService service.StockServiceInterface
	validator    *validator.Validate
}

// NewStockHandler создает новый обработчик операций с остатками
func NewStockHandler(stockService service.StockServiceInterface) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		validator:    validator.New(),
	}
}

// CreateSale обрабатывает POST /sales
// Регистрирует продажу и уменьшает остаток товара
func (h *StockHandler) CreateSale(c *gin.Context) {
	var req entity.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	sale, err := h.stockService.RecordSale(c.Request.Context(), &req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrEmployeeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Employee not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// DeleteSale обрабатывает DELETE /sales/:id
// Отменяет продажу и возвращает ее количество на остаток товара
func (h *StockHandler) DeleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}

	if err := h.stockService.ReverseSale(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}

// CreateInventory обрабатывает POST /inventory
// Регистрирует поступление и увеличивает остаток товара
func (h *StockHandler) CreateInventory(c *gin.Context) {
	var req entity.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	inv, err := h.stockService.RecordReceipt(c.Request.Context(), &req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrSupplierNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record receipt"})
		}
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// DeleteInventory обрабатывает DELETE /inventory/:id
// Отменяет поступление и списывает его количество с остатка товара
func (h *StockHandler) DeleteInventory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	if err := h.stockService.ReverseReceipt(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrInventoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory record deleted"})
}

// GetStockMovements обрабатывает GET /stock/movements
// Возвращает последние записи журнала движения остатков
func (h *StockHandler) GetStockMovements(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(movementsDefaultLimit)), 10, 64)
	if err != nil || limit < 1 {
		limit = movementsDefaultLimit
	}

	movements, err := h.stockService.RecentMovements(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stock movements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
