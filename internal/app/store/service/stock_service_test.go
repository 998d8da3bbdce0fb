package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/repository/mocks"
	"storetrack/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("storetrack-test", "error", io.Discard)
	m.Run()
}

type stockServiceMocks struct {
	stockRepo    *mocks.MockStockRepository
	productRepo  *mocks.MockProductRepository
	employeeRepo *mocks.MockEmployeeRepository
	supplierRepo *mocks.MockSupplierRepository
	movementRepo *mocks.MockMovementRepository
	publisher    *mocks.MockMessagePublisher
}

func newStockService() (*StockService, *stockServiceMocks) {
	m := &stockServiceMocks{
		stockRepo:    new(mocks.MockStockRepository),
		productRepo:  new(mocks.MockProductRepository),
		employeeRepo: new(mocks.MockEmployeeRepository),
		supplierRepo: new(mocks.MockSupplierRepository),
		movementRepo: new(mocks.MockMovementRepository),
		publisher:    new(mocks.MockMessagePublisher),
	}

	svc := NewStockService(
		m.stockRepo,
		m.productRepo,
		m.employeeRepo,
		m.supplierRepo,
		m.movementRepo,
		m.publisher,
		"stock_events",
	)

	return svc, m
}

func newTestProduct() *entity.Product {
	return &entity.Product{
		ID:            uuid.New(),
		Name:          "Blue Jeans",
		CategoryID:    uuid.New(),
		StockQuantity: 10,
	}
}

func newTestEmployee() *entity.Employee {
	return &entity.Employee{
		ID:       uuid.New(),
		Name:     "Ivan Petrov",
		Position: "Sales Assistant",
	}
}

// ===================== RecordSale Tests =====================

func TestStockService_RecordSale_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	product := newTestProduct()
	employee := newTestEmployee()
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	m.productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	m.stockRepo.On("RecordSale", ctx, mock.AnythingOfType("*entity.Sale")).Return(7, nil)
	m.publisher.On("PublishMessage", ctx, product.ID.String(), mock.Anything).Return(nil)
	m.movementRepo.On("Insert", ctx, mock.AnythingOfType("*entity.StockMovement")).Return(nil)

	req := &entity.CreateSaleRequest{
		ProductID:  product.ID,
		EmployeeID: employee.ID,
		Quantity:   3,
		Price:      49.90,
	}

	sale, err := svc.RecordSale(ctx, req, now)

	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, 3, sale.Quantity)
	assert.Equal(t, now, sale.DateTime)
	assert.NotEqual(t, uuid.Nil, sale.ID)

	m.stockRepo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
	m.movementRepo.AssertExpectations(t)
}

func TestStockService_RecordSale_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	req := &entity.CreateSaleRequest{
		ProductID:  uuid.New(),
		EmployeeID: uuid.New(),
		Quantity:   0,
		Price:      49.90,
	}

	sale, err := svc.RecordSale(ctx, req, time.Now())

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	m.stockRepo.AssertNotCalled(t, "RecordSale")
}

func TestStockService_RecordSale_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	productID := uuid.New()
	m.productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	req := &entity.CreateSaleRequest{
		ProductID:  productID,
		EmployeeID: uuid.New(),
		Quantity:   1,
		Price:      10,
	}

	sale, err := svc.RecordSale(ctx, req, time.Now())

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrProductNotFound)
	m.stockRepo.AssertNotCalled(t, "RecordSale")
}

func TestStockService_RecordSale_KafkaErrorNotFatal(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	product := newTestProduct()
	employee := newTestEmployee()

	m.productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	m.employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	m.stockRepo.On("RecordSale", ctx, mock.AnythingOfType("*entity.Sale")).Return(7, nil)
	m.publisher.On("PublishMessage", ctx, product.ID.String(), mock.Anything).Return(errors.New("kafka down"))
	m.movementRepo.On("Insert", ctx, mock.AnythingOfType("*entity.StockMovement")).Return(nil)

	req := &entity.CreateSaleRequest{
		ProductID:  product.ID,
		EmployeeID: employee.ID,
		Quantity:   3,
		Price:      49.90,
	}

	sale, err := svc.RecordSale(ctx, req, time.Now())

	// Продажа уже закоммичена в БД, ошибка Kafka не отменяет операцию
	require.NoError(t, err)
	assert.NotNil(t, sale)
}

// ===================== ReverseSale Tests =====================

func TestStockService_ReverseSale_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	sale := &entity.Sale{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  3,
	}

	m.stockRepo.On("ReverseSale", ctx, sale.ID).Return(sale, 13, nil)
	m.publisher.On("PublishMessage", ctx, sale.ProductID.String(), mock.Anything).Return(nil)
	m.movementRepo.On("Insert", ctx, mock.MatchedBy(func(mov *entity.StockMovement) bool {
		return mov.Kind == entity.MovementSaleReversal && mov.QuantityDelta == 3 && mov.StockAfter == 13
	})).Return(nil)

	err := svc.ReverseSale(ctx, sale.ID)

	require.NoError(t, err)
	m.stockRepo.AssertExpectations(t)
	m.movementRepo.AssertExpectations(t)
}

func TestStockService_ReverseSale_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	saleID := uuid.New()
	m.stockRepo.On("ReverseSale", ctx, saleID).Return(nil, 0, repository.ErrSaleNotFound)

	err := svc.ReverseSale(ctx, saleID)

	assert.ErrorIs(t, err, ErrSaleNotFound)
	m.publisher.AssertNotCalled(t, "PublishMessage")
}

// ===================== RecordReceipt Tests =====================

func TestStockService_RecordReceipt_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	product := newTestProduct()
	supplier := &entity.Supplier{ID: uuid.New(), Name: "Textile Group"}
	now := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	m.productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	m.supplierRepo.On("GetByID", ctx, supplier.ID).Return(supplier, nil)
	m.stockRepo.On("RecordReceipt", ctx, mock.AnythingOfType("*entity.Inventory")).Return(30, nil)
	m.publisher.On("PublishMessage", ctx, product.ID.String(), mock.Anything).Return(nil)
	m.movementRepo.On("Insert", ctx, mock.MatchedBy(func(mov *entity.StockMovement) bool {
		return mov.Kind == entity.MovementReceipt && mov.QuantityDelta == 20
	})).Return(nil)

	req := &entity.CreateInventoryRequest{
		ProductID:  product.ID,
		SupplierID: supplier.ID,
		Quantity:   20,
		UnitPrice:  12.50,
	}

	inv, err := svc.RecordReceipt(ctx, req, now)

	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, 20, inv.Quantity)
	assert.Equal(t, now, inv.DateReceived)
	m.stockRepo.AssertExpectations(t)
}

func TestStockService_RecordReceipt_SupplierNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	product := newTestProduct()
	supplierID := uuid.New()

	m.productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	m.supplierRepo.On("GetByID", ctx, supplierID).Return(nil, repository.ErrSupplierNotFound)

	req := &entity.CreateInventoryRequest{
		ProductID:  product.ID,
		SupplierID: supplierID,
		Quantity:   20,
		UnitPrice:  12.50,
	}

	inv, err := svc.RecordReceipt(ctx, req, time.Now())

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
	m.stockRepo.AssertNotCalled(t, "RecordReceipt")
}

// ===================== PublishLowStockAlert Tests =====================

func TestStockService_PublishLowStockAlert_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	products := []entity.Product{
		{ID: uuid.New(), Name: "Blue Jeans", StockQuantity: 2},
		{ID: uuid.New(), Name: "White Shirt", StockQuantity: 0},
	}

	m.productRepo.On("FindLowStock", ctx).Return(products, nil)
	m.publisher.On("PublishMessage", ctx, entity.EventLowStockAlert, mock.Anything).Return(nil)

	err := svc.PublishLowStockAlert(ctx)

	require.NoError(t, err)
	m.publisher.AssertExpectations(t)
}

func TestStockService_PublishLowStockAlert_NothingToReport(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	m.productRepo.On("FindLowStock", ctx).Return([]entity.Product{}, nil)

	err := svc.PublishLowStockAlert(ctx)

	require.NoError(t, err)
	m.publisher.AssertNotCalled(t, "PublishMessage")
}

// ===================== RecentMovements Tests =====================

func TestStockService_RecentMovements(t *testing.T) {
	ctx := context.Background()
	svc, m := newStockService()

	movements := []entity.StockMovement{
		{Kind: entity.MovementSale, QuantityDelta: -3, StockAfter: 7},
	}
	m.movementRepo.On("Recent", ctx, int64(50)).Return(movements, nil)

	got, err := svc.RecentMovements(ctx, 50)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, entity.MovementSale, got[0].Kind)
}
