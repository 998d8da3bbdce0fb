package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Виды движения остатков в журнале аудита
const (
	MovementSale            = "sale"
	MovementReceipt         = "receipt"
	MovementSaleReversal    = "sale_reversal"
	MovementReceiptReversal = "receipt_reversal"
)

// StockMovement - запись журнала движения остатков в MongoDB
// Журнал append-only: позволяет восстановить, как остаток пришел
// к текущему значению (в том числе как ушел в минус)
type StockMovement struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID     string             `bson:"product_id" json:"product_id"`
	RecordID      string             `bson:"record_id" json:"record_id"`
	Kind          string             `bson:"kind" json:"kind"`
	QuantityDelta int                `bson:"quantity_delta" json:"quantity_delta"`
	StockAfter    int                `bson:"stock_after" json:"stock_after"`
	RecordedAt    time.Time          `bson:"recorded_at" json:"recorded_at"`
}
