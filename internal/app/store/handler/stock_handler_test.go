package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/service"
	"storetrack/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("storetrack-test", "error", io.Discard)
	m.Run()
}

// mockStockService реализует service.StockServiceInterface для тестов обработчика
type mockStockService struct {
	mock.Mock
}

func (m *mockStockService) RecordSale(ctx context.Context, req *entity.CreateSaleRequest, now time.Time) (*entity.Sale, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sale), args.Error(1)
}

func (m *mockStockService) ReverseSale(ctx context.Context, saleID uuid.UUID) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

func (m *mockStockService) RecordReceipt(ctx context.Context, req *entity.CreateInventoryRequest, now time.Time) (*entity.Inventory, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Inventory), args.Error(1)
}

func (m *mockStockService) ReverseReceipt(ctx context.Context, inventoryID uuid.UUID) error {
	args := m.Called(ctx, inventoryID)
	return args.Error(0)
}

func (m *mockStockService) RecentMovements(ctx context.Context, limit int64) ([]entity.StockMovement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StockMovement), args.Error(1)
}

func (m *mockStockService) PublishLowStockAlert(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newStockRouter() (*gin.Engine, *mockStockService) {
	svc := new(mockStockService)
	h := NewStockHandler(svc)

	router := gin.New()
	router.POST("/sales", h.CreateSale)
	router.DELETE("/sales/:id", h.DeleteSale)
	router.POST("/inventory", h.CreateInventory)
	router.DELETE("/inventory/:id", h.DeleteInventory)
	router.GET("/stock/movements", h.GetStockMovements)

	return router, svc
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===================== CreateSale Tests =====================

func TestStockHandler_CreateSale_Success(t *testing.T) {
	router, svc := newStockRouter()

	sale := &entity.Sale{ID: uuid.New(), Quantity: 3}
	svc.On("RecordSale", mock.Anything, mock.AnythingOfType("*entity.CreateSaleRequest"), mock.AnythingOfType("time.Time")).
		Return(sale, nil)

	w := postJSON(router, "/sales", entity.CreateSaleRequest{
		ProductID:  uuid.New(),
		EmployeeID: uuid.New(),
		Quantity:   3,
		Price:      49.90,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, sale.ID, got.ID)
}

func TestStockHandler_CreateSale_ValidationRejectsZeroQuantity(t *testing.T) {
	router, svc := newStockRouter()

	w := postJSON(router, "/sales", entity.CreateSaleRequest{
		ProductID:  uuid.New(),
		EmployeeID: uuid.New(),
		Quantity:   0,
		Price:      49.90,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RecordSale")
}

func TestStockHandler_CreateSale_ProductNotFound(t *testing.T) {
	router, svc := newStockRouter()

	svc.On("RecordSale", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrProductNotFound)

	w := postJSON(router, "/sales", entity.CreateSaleRequest{
		ProductID:  uuid.New(),
		EmployeeID: uuid.New(),
		Quantity:   1,
		Price:      10,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestStockHandler_CreateSale_InvalidBody(t *testing.T) {
	router, _ := newStockRouter()

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== DeleteSale Tests =====================

func TestStockHandler_DeleteSale_Success(t *testing.T) {
	router, svc := newStockRouter()

	saleID := uuid.New()
	svc.On("ReverseSale", mock.Anything, saleID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/sales/"+saleID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestStockHandler_DeleteSale_NotFound(t *testing.T) {
	router, svc := newStockRouter()

	saleID := uuid.New()
	svc.On("ReverseSale", mock.Anything, saleID).Return(service.ErrSaleNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/sales/"+saleID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockHandler_DeleteSale_InvalidID(t *testing.T) {
	router, svc := newStockRouter()

	req := httptest.NewRequest(http.MethodDelete, "/sales/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ReverseSale")
}

// ===================== CreateInventory Tests =====================

func TestStockHandler_CreateInventory_Success(t *testing.T) {
	router, svc := newStockRouter()

	inv := &entity.Inventory{ID: uuid.New(), Quantity: 20}
	svc.On("RecordReceipt", mock.Anything, mock.AnythingOfType("*entity.CreateInventoryRequest"), mock.AnythingOfType("time.Time")).
		Return(inv, nil)

	w := postJSON(router, "/inventory", entity.CreateInventoryRequest{
		ProductID:  uuid.New(),
		SupplierID: uuid.New(),
		Quantity:   20,
		UnitPrice:  12.50,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStockHandler_CreateInventory_SupplierNotFound(t *testing.T) {
	router, svc := newStockRouter()

	svc.On("RecordReceipt", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrSupplierNotFound)

	w := postJSON(router, "/inventory", entity.CreateInventoryRequest{
		ProductID:  uuid.New(),
		SupplierID: uuid.New(),
		Quantity:   20,
		UnitPrice:  12.50,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Supplier not found")
}

// ===================== GetStockMovements Tests =====================

func TestStockHandler_GetStockMovements_DefaultLimit(t *testing.T) {
	router, svc := newStockRouter()

	movements := []entity.StockMovement{{Kind: entity.MovementSale, QuantityDelta: -3}}
	svc.On("RecentMovements", mock.Anything, int64(movementsDefaultLimit)).Return(movements, nil)

	req := httptest.NewRequest(http.MethodGet, "/stock/movements", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestStockHandler_GetStockMovements_CustomLimit(t *testing.T) {
	router, svc := newStockRouter()

	svc.On("RecentMovements", mock.Anything, int64(10)).Return([]entity.StockMovement{}, nil)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/stock/movements?limit=%d", 10), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
