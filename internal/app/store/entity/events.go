package entity

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий изменения остатков для Kafka
const (
	EventStockSale            = "STOCK_SALE"
	EventStockReceipt         = "STOCK_RECEIPT"
	EventStockSaleReversed    = "STOCK_SALE_REVERSED"
	EventStockReceiptReversed = "STOCK_RECEIPT_REVERSED"
	EventLowStockAlert        = "LOW_STOCK_ALERT"
)

// StockEvent представляет событие изменения остатка товара для Kafka
// Key сообщения - ProductID, чтобы события одного товара шли по порядку
type StockEvent struct {
	EventType  string    `json:"event_type"`
	ProductID  uuid.UUID `json:"product_id"`
	RecordID   uuid.UUID `json:"record_id"` // ID записи Sale или Inventory
	Quantity   int       `json:"quantity"`
	StockAfter int       `json:"stock_after"`
	Timestamp  time.Time `json:"timestamp"`
}

// LowStockAlert - сводка по товарам с низким остатком (stock_quantity < 10)
// Отправляется фоновой задачей по расписанию
type LowStockAlert struct {
	EventType string            `json:"event_type"`
	Products  []LowStockProduct `json:"products"`
	Timestamp time.Time         `json:"timestamp"`
}

type LowStockProduct struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
}
