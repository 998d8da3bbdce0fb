package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="storetrack"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (специфичные для Storetrack)
// =============================================================================

// SalesRecorded - зарегистрированные продажи
var SalesRecorded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_sales_recorded_total",
		Help: "Total number of sales recorded",
	},
)

// SalesReversed - отменённые продажи (с возвратом остатка)
var SalesReversed = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_sales_reversed_total",
		Help: "Total number of sales reversed",
	},
)

// ReceiptsRecorded - зарегистрированные поступления товара
var ReceiptsRecorded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_inventory_receipts_recorded_total",
		Help: "Total number of inventory receipts recorded",
	},
)

// ReceiptsReversed - отменённые поступления товара
var ReceiptsReversed = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "store_inventory_receipts_reversed_total",
		Help: "Total number of inventory receipts reversed",
	},
)

// StockAdjustments - изменения остатков по направлению
var StockAdjustments = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_stock_adjustments_total",
		Help: "Total number of stock quantity adjustments",
	},
	[]string{"direction"}, // increase, decrease
)

// CsvExports - выгрузки отчётов в CSV
var CsvExports = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_csv_exports_total",
		Help: "Total number of CSV report exports",
	},
	[]string{"entity"}, // products, sales, inventory, employees
)

// LoginAttempts - попытки входа
var LoginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, failed
)
