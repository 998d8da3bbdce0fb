package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/util"
	"storetrack/pkg/logger"
	"storetrack/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService координирует операции, изменяющие остатки товаров:
// продажи, поступления и их отмены
//
// Каждая операция проходит три шага:
//  1. Транзакционная запись в PostgreSQL через StockRepository
//     (строка события и остаток товара меняются атомарно)
//  2. Событие в Kafka с ключом ProductID
//  3. Запись в журнал движения остатков в MongoDB
//
// Шаги 2 и 3 не критичны: их ошибки логируются, но операция
// считается успешной, как только закоммичена транзакция в БД
type StockService struct {
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.MovementRepository
	publisher    util.MessagePublisher
	topic        string
}

// NewStockService создает новый сервис остатков с внедрением зависимостей
func NewStockService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.MovementRepository,
	publisher util.MessagePublisher,
	topic string,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
		publisher:    publisher,
		topic:        topic,
	}
}

// RecordSale регистрирует продажу и уменьшает остаток товара
// Проверки достаточности остатка нет: остаток может уйти в минус,
// расхождение будет видно в отчетах и журнале движения
func (s *StockService) RecordSale(ctx context.Context, req *entity.CreateSaleRequest, now time.Time) (*entity.Sale, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	sale := &entity.Sale{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		EmployeeID: req.EmployeeID,
		Quantity:   req.Quantity,
		Price:      decimal.NewFromFloat(req.Price),
		DateTime:   now,
	}

	stockAfter, err := s.stockRepo.RecordSale(ctx, sale)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	metrics.SalesRecorded.Inc()
	metrics.StockAdjustments.WithLabelValues("decrease").Inc()

	s.publishStockEvent(ctx, entity.EventStockSale, sale.ProductID, sale.ID, sale.Quantity, stockAfter)
	s.recordMovement(ctx, entity.MovementSale, sale.ProductID, sale.ID, -sale.Quantity, stockAfter, now)

	return sale, nil
}

// ReverseSale отменяет продажу и возвращает ее количество на остаток товара
func (s *StockService) ReverseSale(ctx context.Context, saleID uuid.UUID) error {
	sale, stockAfter, err := s.stockRepo.ReverseSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to reverse sale: %w", err)
	}

	metrics.SalesReversed.Inc()
	metrics.StockAdjustments.WithLabelValues("increase").Inc()

	now := time.Now()
	s.publishStockEvent(ctx, entity.EventStockSaleReversed, sale.ProductID, sale.ID, sale.Quantity, stockAfter)
	s.recordMovement(ctx, entity.MovementSaleReversal, sale.ProductID, sale.ID, sale.Quantity, stockAfter, now)

	return nil
}

// RecordReceipt регистрирует поступление и увеличивает остаток товара
func (s *StockService) RecordReceipt(ctx context.Context, req *entity.CreateInventoryRequest, now time.Time) (*entity.Inventory, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if _, err := s.supplierRepo.GetByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	inv := &entity.Inventory{
		ID:           uuid.New(),
		ProductID:    req.ProductID,
		SupplierID:   req.SupplierID,
		Quantity:     req.Quantity,
		UnitPrice:    decimal.NewFromFloat(req.UnitPrice),
		DateReceived: now,
	}

	stockAfter, err := s.stockRepo.RecordReceipt(ctx, inv)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}

	metrics.ReceiptsRecorded.Inc()
	metrics.StockAdjustments.WithLabelValues("increase").Inc()

	s.publishStockEvent(ctx, entity.EventStockReceipt, inv.ProductID, inv.ID, inv.Quantity, stockAfter)
	s.recordMovement(ctx, entity.MovementReceipt, inv.ProductID, inv.ID, inv.Quantity, stockAfter, now)

	return inv, nil
}

// ReverseReceipt отменяет поступление и списывает его количество с остатка
// Может увести остаток в минус, если поступивший товар уже продан
func (s *StockService) ReverseReceipt(ctx context.Context, inventoryID uuid.UUID) error {
	inv, stockAfter, err := s.stockRepo.ReverseReceipt(ctx, inventoryID)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return ErrInventoryNotFound
		}
		return fmt.Errorf("failed to reverse receipt: %w", err)
	}

	metrics.ReceiptsReversed.Inc()
	metrics.StockAdjustments.WithLabelValues("decrease").Inc()

	now := time.Now()
	s.publishStockEvent(ctx, entity.EventStockReceiptReversed, inv.ProductID, inv.ID, inv.Quantity, stockAfter)
	s.recordMovement(ctx, entity.MovementReceiptReversal, inv.ProductID, inv.ID, -inv.Quantity, stockAfter, now)

	return nil
}

// PublishLowStockAlert отправляет в Kafka сводку по товарам с низким
// остатком. Вызывается фоновой задачей по расписанию
// Если таких товаров нет, событие не отправляется
func (s *StockService) PublishLowStockAlert(ctx context.Context) error {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to find low stock products: %w", err)
	}

	if len(products) == 0 {
		logger.Debug().Msg("no low stock products, skipping alert")
		return nil
	}

	alert := entity.LowStockAlert{
		EventType: entity.EventLowStockAlert,
		Products:  make([]entity.LowStockProduct, 0, len(products)),
		Timestamp: time.Now(),
	}
	for i := range products {
		alert.Products = append(alert.Products, entity.LowStockProduct{
			ProductID:     products[i].ID,
			Name:          products[i].Name,
			StockQuantity: products[i].StockQuantity,
		})
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal low stock alert: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, entity.EventLowStockAlert, data); err != nil {
		metrics.KafkaErrors.WithLabelValues("storetrack", s.topic, "produce").Inc()
		return fmt.Errorf("failed to publish low stock alert: %w", err)
	}

	metrics.KafkaMessagesProduced.WithLabelValues("storetrack", s.topic).Inc()
	logger.Info().Int("products", len(alert.Products)).Msg("low stock alert published")

	return nil
}

// RecentMovements возвращает последние записи журнала движения остатков
func (s *StockService) RecentMovements(ctx context.Context, limit int64) ([]entity.StockMovement, error) {
	movements, err := s.movementRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock movements: %w", err)
	}

	return movements, nil
}

// publishStockEvent отправляет событие изменения остатка в Kafka
// Ключ сообщения - ProductID, события одного товара идут по порядку
func (s *StockService) publishStockEvent(ctx context.Context, eventType string, productID, recordID uuid.UUID, quantity, stockAfter int) {
	event := entity.StockEvent{
		EventType:  eventType,
		ProductID:  productID,
		RecordID:   recordID,
		Quantity:   quantity,
		StockAfter: stockAfter,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal stock event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, productID.String(), data); err != nil {
		metrics.KafkaErrors.WithLabelValues("storetrack", s.topic, "produce").Inc()
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish stock event")
		return
	}

	metrics.KafkaMessagesProduced.WithLabelValues("storetrack", s.topic).Inc()
}

// recordMovement пишет запись в журнал движения остатков в MongoDB
func (s *StockService) recordMovement(ctx context.Context, kind string, productID, recordID uuid.UUID, delta, stockAfter int, now time.Time) {
	movement := &entity.StockMovement{
		ProductID:     productID.String(),
		RecordID:      recordID.String(),
		Kind:          kind,
		QuantityDelta: delta,
		StockAfter:    stockAfter,
		RecordedAt:    now,
	}

	if err := s.movementRepo.Insert(ctx, movement); err != nil {
		logger.Error().Err(err).Str("kind", kind).Msg("failed to record stock movement")
	}
}
