package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storetrack/internal/app/store/config"
	"storetrack/internal/app/store/handler"
	"storetrack/internal/app/store/processor"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/service"
	"storetrack/internal/app/store/util"
	"storetrack/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("storetrack", cfg.LogLevel)

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	// Основное хранилище: справочники, продажи и поступления
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Msg("connected to PostgreSQL")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis используется для кеширования списка категорий
	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to Redis")

	// === ПОДКЛЮЧЕНИЕ К MONGODB ===
	// MongoDB хранит журнал движения остатков
	mongoClient, mongoDB, err := connectMongo(cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()
	logger.Info().Msg("connected to MongoDB")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// События об изменении остатков уходят в топик stock_events
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	stockRepo := repository.NewStockRepository(db)
	movementRepo := repository.NewMovementRepository(mongoDB)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenTTLh)*time.Hour)

	catalogService := service.NewCatalogService(categoryRepo, productRepo, supplierRepo, redisClient)
	stockService := service.NewStockService(
		stockRepo,
		productRepo,
		employeeRepo,
		supplierRepo,
		movementRepo,
		kafkaProducer,
		cfg.Kafka.Topic,
	)
	reportService := service.NewReportService(
		saleRepo,
		inventoryRepo,
		productRepo,
		categoryRepo,
		employeeRepo,
		supplierRepo,
	)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, saleRepo)
	authService := service.NewAuthService(userRepo, jwtManager)

	// === ЗАПУСК ФОНОВОЙ ПРОВЕРКИ НИЗКИХ ОСТАТКОВ ===
	scheduler := processor.NewCronScheduler(stockService)
	if err := scheduler.Start(context.Background(), cfg.Cron.LowStockSchedule); err != nil {
		logger.Fatal().Err(err).Msg("failed to start cron scheduler")
	}
	defer scheduler.Stop()

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	handlers := &handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Stock:    handler.NewStockHandler(stockService),
		Report:   handler.NewReportHandler(reportService),
		Employee: handler.NewEmployeeHandler(employeeService),
		Export:   handler.NewExportHandler(reportService),
	}

	authMiddleware := handler.NewAuthMiddleware(jwtManager)
	router := handler.SetupRoutes(handlers, authMiddleware)

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("starting Storetrack")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down Storetrack")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("Storetrack stopped gracefully")
}

// connectDB открывает соединение с PostgreSQL через pgx stdlib драйвер
// и оборачивает его в GORM. Повторяет попытки подключения,
// пока PostgreSQL поднимается в Docker
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	for i := 0; i < 10; i++ {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("database not ready, retrying")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return db, nil
}

// connectMongo подключается к MongoDB и проверяет соединение через ping
func connectMongo(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(cfg.DBName), nil
}
