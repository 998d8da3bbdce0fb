package repository

import (
	"context"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type movementRepository struct {
	collection *mongo.Collection
}

// NewMovementRepository создает журнал движения остатков в MongoDB
// Автоматически создает индексы по product_id и recorded_at
func NewMovementRepository(db *mongo.Database) MovementRepository {
	collection := db.Collection("stock_movements")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetName("product_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, productIndex); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on product_id: %v\n", err)
	}

	timeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "recorded_at", Value: -1},
		},
		Options: options.Index().SetName("recorded_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, timeIndex); err != nil {
		fmt.Printf("Warning: failed to create index on recorded_at: %v\n", err)
	}

	return &movementRepository{collection: collection}
}

// Insert добавляет запись движения остатков
// Журнал append-only: записи не обновляются и не удаляются
func (r *movementRepository) Insert(ctx context.Context, movement *entity.StockMovement) error {
	if movement.RecordedAt.IsZero() {
		movement.RecordedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, movement)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}

	return nil
}

// Recent возвращает limit последних движений остатков
func (r *movementRepository) Recent(ctx context.Context, limit int64) ([]entity.StockMovement, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock movements: %w", err)
	}
	defer cursor.Close(ctx)

	var movements []entity.StockMovement
	if err := cursor.All(ctx, &movements); err != nil {
		return nil, fmt.Errorf("failed to decode stock movements: %w", err)
	}

	return movements, nil
}
